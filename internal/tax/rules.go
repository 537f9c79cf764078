package tax

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lorean-shop/lorean/internal/domain"
)

// RuleCalculator computes tax from the stored tax rules.
type RuleCalculator struct {
	source RuleSource
	policy MergePolicy
}

// NewRuleCalculator creates a rule-backed calculator with the given GLOBAL
// merge policy. An unrecognized policy falls back to MergeAdditive.
func NewRuleCalculator(source RuleSource, policy MergePolicy) *RuleCalculator {
	if policy != MergeAdditive && policy != MergeFallback {
		policy = MergeAdditive
	}
	return &RuleCalculator{source: source, policy: policy}
}

// CalculateTax evaluates every applicable rule in priority order.
//
// Per-product overrides: an override of exactly 0 excludes the rule for that
// product; any other override replaces the rule's rate for that product only.
// Percentage rules contribute amount*rate/100, fixed rules contribute the
// rate as a flat amount. Arithmetic is plain float64 with no rounding;
// display formatting is a presentation concern. Zero and negative amounts
// pass through unchecked.
func (c *RuleCalculator) CalculateTax(ctx context.Context, amount float64, country string, productID string) (*Result, error) {
	rules, err := c.rulesFor(ctx, country)
	if err != nil {
		return nil, fmt.Errorf("failed to load tax rules: %w", err)
	}

	result := &Result{TaxName: NoTaxName}

	var names []string
	haveFirst := false
	for _, rule := range rules {
		if !rule.Active {
			// Inactive rules never contribute. The store already filters
			// these out; this guards sources that don't.
			continue
		}

		rate, skip := rule.EffectiveRate(productID)
		if skip {
			continue
		}

		var contribution float64
		switch rule.Type {
		case domain.TaxTypePercentage:
			contribution = amount * rate / 100
		case domain.TaxTypeFixed:
			contribution = rate
		default:
			continue
		}

		if !haveFirst {
			// Nominal rate of the first matching rule, not the override.
			result.TaxRate = rule.Rate
			haveFirst = true
		}

		result.Breakdown = append(result.Breakdown, domain.TaxLine{
			Name:   rule.Name,
			Rate:   rate,
			Type:   rule.Type,
			Amount: contribution,
		})
		result.TaxAmount += contribution
		names = append(names, rule.Name)
	}

	if len(names) > 0 {
		result.TaxName = strings.Join(names, " + ")
	}
	return result, nil
}

// rulesFor resolves the rule set for a country under the merge policy.
// The returned slice is ordered by priority; at equal priority a
// country-specific rule sorts before a GLOBAL one so breakdown order is
// stable.
func (c *RuleCalculator) rulesFor(ctx context.Context, country string) ([]domain.TaxRule, error) {
	specific, err := c.source.ListActiveTaxRulesByCountry(ctx, country)
	if err != nil {
		return nil, err
	}
	if country == domain.CountryGlobal {
		return specific, nil
	}

	switch c.policy {
	case MergeFallback:
		if len(specific) > 0 {
			return specific, nil
		}
		return c.source.ListActiveTaxRulesByCountry(ctx, domain.CountryGlobal)
	default:
		global, err := c.source.ListActiveTaxRulesByCountry(ctx, domain.CountryGlobal)
		if err != nil {
			return nil, err
		}
		merged := make([]domain.TaxRule, 0, len(specific)+len(global))
		merged = append(merged, specific...)
		merged = append(merged, global...)
		sort.SliceStable(merged, func(i, j int) bool {
			return merged[i].Priority < merged[j].Priority
		})
		return merged, nil
	}
}
