package tax

import (
	"context"

	"github.com/lorean-shop/lorean/internal/domain"
)

// NoTaxName is the result name when no rules match.
const NoTaxName = "No Tax"

// MergePolicy decides how GLOBAL rules combine with country-specific rules.
type MergePolicy string

const (
	// MergeAdditive applies GLOBAL rules and country-specific rules together.
	MergeAdditive MergePolicy = "additive"

	// MergeFallback applies GLOBAL rules only when no country-specific rule exists.
	MergeFallback MergePolicy = "fallback"
)

// Calculator computes tax for an amount in a country, with optional
// per-product overrides. productID may be empty when the amount is not tied
// to a single product.
// Implementations: RuleCalculator, NoTaxCalculator, MockCalculator.
type Calculator interface {
	CalculateTax(ctx context.Context, amount float64, country string, productID string) (*Result, error)
}

// RuleSource provides the active tax rules for a country, ordered ascending
// by priority. The store filters by exact country match; GLOBAL merging is
// the calculator's concern.
type RuleSource interface {
	ListActiveTaxRulesByCountry(ctx context.Context, country string) ([]domain.TaxRule, error)
}

// Result is a complete tax calculation.
type Result struct {
	// TaxAmount is the sum of all line contributions.
	TaxAmount float64

	// TaxRate is the first matching rule's nominal rate. It is a reporting
	// convenience, never used to recompute TaxAmount.
	TaxRate float64

	// TaxName joins the applied rules' names with " + " in evaluation order,
	// or NoTaxName when nothing matched.
	TaxName string

	// Breakdown itemizes each applied rule's contribution in evaluation order.
	Breakdown []domain.TaxLine
}
