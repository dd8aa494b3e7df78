package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"bistro/internal/errors"
	"bistro/internal/guard"
	"bistro/internal/model"
	"bistro/internal/service"
)

// PaymentHandler handles checkout endpoints.
type PaymentHandler struct {
	checkoutService service.CheckoutService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(checkoutService service.CheckoutService) *PaymentHandler {
	return &PaymentHandler{checkoutService: checkoutService}
}

// PaymentIntentRequest carries the order total in major currency units.
type PaymentIntentRequest struct {
	Price decimal.Decimal `json:"price" swaggertype:"number"`
}

// PaymentIntentResponse carries the client secret of a new payment intent.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// PaymentRequest records a payment confirmed by the client.
type PaymentRequest struct {
	Email          string          `json:"email" validate:"omitempty,email"`
	Price          decimal.Decimal `json:"price" swaggertype:"number"`
	TransactionID  string          `json:"transactionId" validate:"required"`
	SettledItemIDs []string        `json:"settledItemIds"`
	MenuItemIDs    []string        `json:"menuItemIds"`
}

// CreatePaymentIntent godoc
// @Summary Create a card payment intent
// @Description Converts the price to whole cents, truncating fractions of a cent.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PaymentIntentRequest true "Order total"
// @Success 200 {object} PaymentIntentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	var req PaymentIntentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	secret, err := h.checkoutService.CreatePaymentIntent(c.Request().Context(), req.Price)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, PaymentIntentResponse{ClientSecret: secret})
}

// ListPayments godoc
// @Summary List the caller's payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param email query string true "Caller email"
// @Success 200 {array} model.Payment
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /payments [get]
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	email := c.QueryParam("email")
	if err := guard.EnsureSelf(c, email); err != nil {
		return respondError(err)
	}

	payments, err := h.checkoutService.ListPayments(c.Request().Context(), email)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, payments)
}

// RecordPayment godoc
// @Summary Record a payment and clear the settled cart entries
// @Description The payment is stored first. A failed cart clear is reported in cartClearResult and not rolled back.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PaymentRequest true "Payment"
// @Success 200 {object} model.Settlement
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /payments [post]
func (h *PaymentHandler) RecordPayment(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	var req PaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Email == "" {
		req.Email = claims.Email
	}
	if req.Email != claims.Email {
		return respondError(errors.ErrForbidden)
	}

	payment := &model.Payment{
		Email:         req.Email,
		Price:         req.Price,
		TransactionID: req.TransactionID,
	}
	payment.SetSettledCartIDs(req.SettledItemIDs)
	payment.SetMenuItemIDs(req.MenuItemIDs)

	settlement, err := h.checkoutService.RecordPayment(c.Request().Context(), payment)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, settlement)
}
