package billing

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/refund"

	"github.com/lorean-shop/lorean/internal/domain"
)

// StripeProvider implements Provider using Stripe payment intents.
type StripeProvider struct{}

// NewStripeProvider configures the Stripe SDK with the given secret key.
func NewStripeProvider(apiKey string) (*StripeProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("stripe API key is required")
	}
	stripe.Key = apiKey
	return &StripeProvider{}, nil
}

// CreatePaymentIntent creates a Stripe payment intent for the order total.
// Stripe amounts are integer minor units; the storefront's float amounts
// are converted at the boundary.
func (s *StripeProvider) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
	currency := params.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	intent, err := paymentintent.New(&stripe.PaymentIntentParams{
		Params:       stripe.Params{Context: ctx},
		Amount:       stripe.Int64(toMinorUnits(params.Amount)),
		Currency:     stripe.String(currency),
		ReceiptEmail: stripe.String(params.CustomerEmail),
		Metadata: map[string]string{
			"order_short_id": params.OrderShortID,
		},
	})
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "billing.create_intent", "payment provider call failed")
	}

	return &PaymentIntent{
		ProviderPaymentID: intent.ID,
		ClientSecret:      intent.ClientSecret,
		Status:            string(intent.Status),
	}, nil
}

// RefundPayment refunds part or all of a captured payment.
func (s *StripeProvider) RefundPayment(ctx context.Context, providerPaymentID string, amount float64) error {
	_, err := refund.New(&stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(providerPaymentID),
		Amount:        stripe.Int64(toMinorUnits(amount)),
	})
	if err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "billing.refund", "payment provider call failed")
	}
	return nil
}

func toMinorUnits(amount float64) int64 {
	return int64(amount*100 + 0.5)
}
