package tax

import "context"

// MockCalculator is a test implementation of Calculator.
type MockCalculator struct {
	CalculateTaxFunc func(ctx context.Context, amount float64, country string, productID string) (*Result, error)
}

// CalculateTax delegates to the configured function or returns the zero-tax result.
func (m *MockCalculator) CalculateTax(ctx context.Context, amount float64, country string, productID string) (*Result, error) {
	if m.CalculateTaxFunc != nil {
		return m.CalculateTaxFunc(ctx, amount, country, productID)
	}
	return &Result{TaxName: NoTaxName}, nil
}
