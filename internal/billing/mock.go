package billing

import "context"

// MockProvider is a test implementation of Provider.
type MockProvider struct {
	CreatePaymentIntentFunc func(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error)
	RefundPaymentFunc       func(ctx context.Context, providerPaymentID string, amount float64) error
}

// CreatePaymentIntent delegates to the configured function or returns a
// succeeded test intent.
func (m *MockProvider) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
	if m.CreatePaymentIntentFunc != nil {
		return m.CreatePaymentIntentFunc(ctx, params)
	}
	return &PaymentIntent{
		ProviderPaymentID: "pi_test",
		ClientSecret:      "pi_test_secret",
		Status:            "requires_payment_method",
	}, nil
}

// RefundPayment delegates to the configured function or succeeds.
func (m *MockProvider) RefundPayment(ctx context.Context, providerPaymentID string, amount float64) error {
	if m.RefundPaymentFunc != nil {
		return m.RefundPaymentFunc(ctx, providerPaymentID, amount)
	}
	return nil
}
