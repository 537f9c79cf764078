package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tax rule types. A percentage rule contributes amount*rate/100; a fixed
// rule contributes rate as a flat currency amount regardless of order size.
const (
	TaxTypePercentage = "percentage"
	TaxTypeFixed      = "fixed"
)

// CountryGlobal is the sentinel country code meaning a rule applies
// regardless of the shopper's country.
const CountryGlobal = "GLOBAL"

// Tax rule domain errors.
var (
	ErrTaxRuleNotFound = &Error{Code: ENOTFOUND, Message: "Tax rule not found"}
	ErrInvalidTaxRate  = &Error{Code: EINVALID, Message: "Tax rate must be positive"}
	ErrInvalidTaxType  = &Error{Code: EINVALID, Message: "Tax type must be percentage or fixed"}
)

// TaxRule describes how much tax to add, for which country, with what
// priority and per-product exceptions.
type TaxRule struct {
	ID       uuid.UUID
	Name     string
	Type     string
	Rate     float64
	Country  string
	Region   string // informational only, never used in matching
	Active   bool
	Priority int32

	// ProductOverrides maps a product identifier to a replacement rate for
	// this rule only. An override of exactly 0 means the rule does not apply
	// to that product at all.
	ProductOverrides map[string]float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveRate returns the rate to apply for the given product and whether
// the rule should be skipped entirely. A zero override is the skip sentinel.
func (r *TaxRule) EffectiveRate(productID string) (rate float64, skip bool) {
	if productID != "" {
		if override, ok := r.ProductOverrides[productID]; ok {
			if override == 0 {
				return 0, true
			}
			return override, false
		}
	}
	return r.Rate, false
}

// ValidTaxType reports whether t is a known tax rule type.
func ValidTaxType(t string) bool {
	return t == TaxTypePercentage || t == TaxTypeFixed
}
