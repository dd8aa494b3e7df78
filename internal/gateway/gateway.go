package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// ErrGateway is returned when the payment provider rejects or fails a call.
var ErrGateway = errors.New("payment gateway failure")

// PaymentGateway creates provider-side payment intents.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amountCents int64, currency string) (clientSecret string, err error)
}

// StripeGateway is a PaymentGateway backed by the Stripe API.
type StripeGateway struct {
	api *client.API
}

// Option configures the Stripe backend.
type Option func(*stripe.BackendConfig)

// WithBaseURL points the gateway at a different API host.
func WithBaseURL(url string) Option {
	return func(cfg *stripe.BackendConfig) {
		cfg.URL = stripe.String(url)
	}
}

// WithLogger routes Stripe client logs through zap.
func WithLogger(log *zap.Logger) Option {
	return func(cfg *stripe.BackendConfig) {
		cfg.LeveledLogger = log.Sugar()
	}
}

// NewStripeGateway creates a gateway for the given secret key. Calls are
// never retried.
func NewStripeGateway(secretKey string, opts ...Option) *StripeGateway {
	cfg := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
		Connect: stripe.GetBackend(stripe.ConnectBackend),
		Uploads: stripe.GetBackend(stripe.UploadsBackend),
	}
	return &StripeGateway{api: client.New(secretKey, backends)}
}

// CreatePaymentIntent creates a card payment intent and returns its client secret.
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return "", fmt.Errorf("%w: %s (%s)", ErrGateway, stripeErr.Msg, stripeErr.Type)
		}
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return intent.ClientSecret, nil
}
