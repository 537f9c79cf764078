package tax

import (
	"time"

	"github.com/lorean-shop/lorean/internal/domain"
)

// Summary aggregates tax collected over a set of historical orders.
type Summary struct {
	TotalTaxCollected float64
	OrderCount        int
	AverageTax        float64

	// ByTaxType sums breakdown line amounts keyed by tax line name, across
	// orders and across duplicate names within one order.
	ByTaxType map[string]float64
}

// Summarize folds orders into collection totals for an optional date window.
// Both bounds are inclusive when given; nil means unbounded. Cancelled orders
// are excluded from every aggregate. The fold is pure: input orders are never
// mutated, and calling it twice yields identical output.
func Summarize(orders []domain.Order, dateFrom, dateTo *time.Time) Summary {
	summary := Summary{ByTaxType: make(map[string]float64)}

	for _, order := range orders {
		if order.Status == domain.OrderStatusCancelled {
			continue
		}
		if dateFrom != nil && order.CreatedAt.Before(*dateFrom) {
			continue
		}
		if dateTo != nil && order.CreatedAt.After(*dateTo) {
			continue
		}

		summary.TotalTaxCollected += order.TaxAmount
		summary.OrderCount++
		for _, line := range order.TaxBreakdown {
			summary.ByTaxType[line.Name] += line.Amount
		}
	}

	if summary.OrderCount > 0 {
		summary.AverageTax = summary.TotalTaxCollected / float64(summary.OrderCount)
	}
	return summary
}
