package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "bistro/internal/errors"
	"bistro/internal/gateway"
	"bistro/internal/model"
	"bistro/internal/repository"
)

var centsPerUnit = decimal.NewFromInt(100)

// CheckoutService creates payment intents and settles carts once a payment
// is confirmed by the client.
type CheckoutService interface {
	CreatePaymentIntent(ctx context.Context, price decimal.Decimal) (string, error)
	RecordPayment(ctx context.Context, payment *model.Payment) (*model.Settlement, error)
	ListPayments(ctx context.Context, email string) ([]model.Payment, error)
}

type checkoutService struct {
	payments repository.PaymentRepository
	carts    repository.CartRepository
	gateway  gateway.PaymentGateway
	currency string
	log      *zap.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	payments repository.PaymentRepository,
	carts repository.CartRepository,
	gw gateway.PaymentGateway,
	currency string,
	log *zap.Logger,
) CheckoutService {
	return &checkoutService{
		payments: payments,
		carts:    carts,
		gateway:  gw,
		currency: currency,
		log:      log,
	}
}

// ToCents converts a major-unit price to whole cents, truncating any
// fraction of a cent.
func ToCents(price decimal.Decimal) int64 {
	return price.Mul(centsPerUnit).IntPart()
}

// CreatePaymentIntent asks the provider for an intent and returns only its
// client secret. Nothing is stored locally.
func (s *checkoutService) CreatePaymentIntent(ctx context.Context, price decimal.Decimal) (string, error) {
	if !price.IsPositive() {
		return "", apperrors.ErrInvalidAmount
	}
	cents := ToCents(price)
	if cents < 1 {
		return "", apperrors.ErrInvalidAmount
	}

	secret, err := s.gateway.CreatePaymentIntent(ctx, cents, s.currency)
	if err != nil {
		s.log.Error("create payment intent",
			zap.Int64("amount_cents", cents),
			zap.String("currency", s.currency),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	return secret, nil
}

// RecordPayment stores the payment, then deletes the settled cart entries
// owned by the payer.
// The order is fixed and there is no rollback: a failed clear is reported in
// the settlement and logged, leaving the entries visible in the cart.
func (s *checkoutService) RecordPayment(ctx context.Context, payment *model.Payment) (*model.Settlement, error) {
	if payment.Email == "" {
		return nil, fmt.Errorf("%w: email is required", apperrors.ErrInvalidInput)
	}
	if !payment.Price.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	payment.ID = ""
	payment.Status = model.PaymentStatusPending
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	settlement := &model.Settlement{
		PaymentResult: model.InsertResult{Acknowledged: true, InsertedID: payment.ID},
	}

	settled := payment.SettledCartIDs()
	deleted, err := s.carts.DeleteByIDs(ctx, payment.Email, settled)
	if err != nil {
		s.log.Error("clear settled cart entries",
			zap.String("payment_id", payment.ID),
			zap.String("email", payment.Email),
			zap.Strings("cart_ids", settled),
			zap.Error(err),
		)
		settlement.CartClearResult = model.DeleteResult{
			Acknowledged: false,
			Error:        "failed to clear settled cart entries",
		}
		return settlement, nil
	}

	settlement.CartClearResult = model.DeleteResult{Acknowledged: true, DeletedCount: deleted}
	return settlement, nil
}

func (s *checkoutService) ListPayments(ctx context.Context, email string) ([]model.Payment, error) {
	payments, err := s.payments.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	return payments, nil
}
