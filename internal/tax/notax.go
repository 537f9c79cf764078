package tax

import "context"

// NoTaxCalculator returns zero tax for all calculations.
// Used for tax-exempt customers or storefronts with tax disabled.
type NoTaxCalculator struct{}

// NewNoTaxCalculator creates a new no-tax calculator.
func NewNoTaxCalculator() Calculator {
	return &NoTaxCalculator{}
}

// CalculateTax always returns the zero-tax result.
func (c *NoTaxCalculator) CalculateTax(ctx context.Context, amount float64, country string, productID string) (*Result, error) {
	return &Result{TaxName: NoTaxName}, nil
}
