// Package billing abstracts the payment provider. Checkout only needs a
// payment intent for prepaid methods; cash on delivery never touches a
// provider.
package billing

import (
	"context"

	"github.com/lorean-shop/lorean/internal/domain"
)

// Billing domain errors.
var (
	ErrPaymentFailed = &domain.Error{Code: domain.EINTERNAL, Message: "Payment provider call failed"}
)

// Provider defines the interface for payment processing.
// Implementations: StripeProvider, MockProvider.
type Provider interface {
	// CreatePaymentIntent creates a one-time charge intent and returns the
	// client secret the storefront uses to confirm it.
	CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error)

	// RefundPayment refunds a captured payment, used when an approved
	// return is marked refunded.
	RefundPayment(ctx context.Context, providerPaymentID string, amount float64) error
}

// CreatePaymentIntentParams describes the charge to create.
type CreatePaymentIntentParams struct {
	Amount        float64
	Currency      string
	OrderShortID  string
	CustomerEmail string
}

// PaymentIntent is the provider's handle for a pending charge.
type PaymentIntent struct {
	ProviderPaymentID string
	ClientSecret      string
	Status            string
}
