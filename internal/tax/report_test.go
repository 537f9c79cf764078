package tax_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lorean-shop/lorean/internal/domain"
	"github.com/lorean-shop/lorean/internal/tax"
)

func orderWithTax(status string, taxAmount float64, createdAt time.Time, lines ...domain.TaxLine) domain.Order {
	return domain.Order{
		Status:       status,
		TaxAmount:    taxAmount,
		TaxBreakdown: lines,
		CreatedAt:    createdAt,
	}
}

func Test_Summarize_ExcludesCancelledOrders(t *testing.T) {
	now := time.Now()
	orders := []domain.Order{
		orderWithTax(domain.OrderStatusCancelled, 50, now, domain.TaxLine{Name: "VAT", Amount: 50}),
		orderWithTax(domain.OrderStatusPaid, 10, now, domain.TaxLine{Name: "VAT", Amount: 10}),
	}

	summary := tax.Summarize(orders, nil, nil)

	assert.Equal(t, 10.0, summary.TotalTaxCollected)
	assert.Equal(t, 1, summary.OrderCount)
	assert.Equal(t, 10.0, summary.ByTaxType["VAT"])
}

func Test_Summarize_Average(t *testing.T) {
	now := time.Now()
	orders := []domain.Order{
		orderWithTax(domain.OrderStatusDelivered, 10, now),
		orderWithTax(domain.OrderStatusPaid, 30, now),
	}

	summary := tax.Summarize(orders, nil, nil)

	assert.Equal(t, 40.0, summary.TotalTaxCollected)
	assert.Equal(t, 2, summary.OrderCount)
	assert.Equal(t, 20.0, summary.AverageTax)
}

func Test_Summarize_EmptyInput(t *testing.T) {
	summary := tax.Summarize(nil, nil, nil)

	assert.Equal(t, 0.0, summary.TotalTaxCollected)
	assert.Equal(t, 0, summary.OrderCount)
	assert.Equal(t, 0.0, summary.AverageTax, "average is 0, not NaN, for an empty window")
	assert.Empty(t, summary.ByTaxType)
}

func Test_Summarize_DateWindowInclusive(t *testing.T) {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	orders := []domain.Order{
		orderWithTax(domain.OrderStatusPaid, 1, from),                     // on the lower bound
		orderWithTax(domain.OrderStatusPaid, 2, to),                       // on the upper bound
		orderWithTax(domain.OrderStatusPaid, 4, from.AddDate(0, 0, -1)),   // before
		orderWithTax(domain.OrderStatusPaid, 8, to.Add(time.Nanosecond)),  // after
		orderWithTax(domain.OrderStatusPaid, 16, from.AddDate(0, 0, 15)),  // inside
	}

	summary := tax.Summarize(orders, &from, &to)

	assert.Equal(t, 19.0, summary.TotalTaxCollected)
	assert.Equal(t, 3, summary.OrderCount)
}

func Test_Summarize_GroupsByTaxLineName(t *testing.T) {
	now := time.Now()
	orders := []domain.Order{
		orderWithTax(domain.OrderStatusPaid, 15, now,
			domain.TaxLine{Name: "VAT", Amount: 10},
			domain.TaxLine{Name: "Handling Fee", Amount: 5}),
		orderWithTax(domain.OrderStatusShipped, 12, now,
			// Duplicate names within one order sum into one bucket.
			domain.TaxLine{Name: "VAT", Amount: 8},
			domain.TaxLine{Name: "VAT", Amount: 4}),
	}

	summary := tax.Summarize(orders, nil, nil)

	assert.Equal(t, 22.0, summary.ByTaxType["VAT"])
	assert.Equal(t, 5.0, summary.ByTaxType["Handling Fee"])
}

func Test_Summarize_Idempotent(t *testing.T) {
	now := time.Now()
	orders := []domain.Order{
		orderWithTax(domain.OrderStatusPaid, 10, now, domain.TaxLine{Name: "VAT", Amount: 10}),
	}

	first := tax.Summarize(orders, nil, nil)
	second := tax.Summarize(orders, nil, nil)

	assert.Equal(t, first, second, "summarizing the same input twice yields identical output")
	assert.Equal(t, domain.OrderStatusPaid, orders[0].Status, "input orders are not mutated")
}
