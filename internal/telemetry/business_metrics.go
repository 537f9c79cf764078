// Package telemetry holds the business-level Prometheus metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics tracks commerce activity independent of the HTTP layer.
type BusinessMetrics struct {
	// Orders
	OrdersCreated      *prometheus.CounterVec
	OrderValue         prometheus.Histogram
	OrderStatusChanges *prometheus.CounterVec
	OrdersDeleted      prometheus.Counter

	// Tax
	TaxCollected *prometheus.CounterVec

	// Returns
	ReturnsCreated  prometheus.Counter
	ReturnsResolved *prometheus.CounterVec
	RefundAmount    prometheus.Counter
}

// NewBusinessMetrics creates and registers the business metrics.
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "lorean"
	}

	subsystem := "business"

	return &BusinessMetrics{
		OrdersCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "orders_created_total",
			Help:      "Orders created, by payment method",
		}, []string{"payment_method"}),
		OrderValue: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "order_value",
			Help:      "Order total amounts",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
		}),
		OrderStatusChanges: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "order_status_changes_total",
			Help:      "Order status transitions, by new status",
		}, []string{"status"}),
		OrdersDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "orders_deleted_total",
			Help:      "Cancelled orders removed by an administrator",
		}),
		TaxCollected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tax_collected_total",
			Help:      "Tax amounts frozen onto created orders, by tax name",
		}, []string{"tax_name"}),
		ReturnsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "returns_created_total",
			Help:      "Return requests submitted",
		}),
		ReturnsResolved: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "returns_resolved_total",
			Help:      "Return requests resolved, by final status",
		}, []string{"status"}),
		RefundAmount: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "refund_amount_total",
			Help:      "Total amount refunded through returns",
		}),
	}
}
