package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Order statuses. The happy path is pending -> paid -> shipped -> delivered,
// but an administrator may set any non-terminal status directly. Cancelled is
// a terminal side-branch reachable from any state.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodCOD    = "cod"
	PaymentMethodCard   = "card"
	PaymentMethodWallet = "wallet"
)

// Order-related domain errors.
var (
	ErrOrderNotFound      = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrInvalidOrderStatus = &Error{Code: EINVALID, Message: "Invalid order status"}
	ErrEmptyCart          = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrInsufficientStock  = &Error{Code: ECONFLICT, Message: "Insufficient stock for one or more items"}
	ErrOrderNotCancelled  = &Error{Code: EFORBIDDEN, Message: "Only cancelled orders can be deleted"}
	ErrTotalMismatch      = &Error{Code: EINVALID, Message: "Order total does not match its components"}
)

// Order is a customer order. Item prices and the tax breakdown are frozen at
// checkout time and never recomputed from later product or rule changes.
type Order struct {
	ID      uuid.UUID
	ShortID string // human-shareable reference, e.g. ORD-20250901-A3K9

	Status string

	Items []OrderItem

	SubtotalAmount float64
	ShippingAmount float64
	TaxAmount      float64
	DiscountAmount float64
	TotalAmount    float64

	TaxBreakdown []TaxLine

	PaymentMethod string
	CustomerEmail string

	// ProviderPaymentID links a prepaid order to its payment at the
	// provider. Empty for cash on delivery.
	ProviderPaymentID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is a snapshot of a product at order time.
type OrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int32     `json:"quantity"`
	Price     float64   `json:"price"`
}

// TaxLine is one itemized tax contribution in an order's breakdown.
// Rate is the effective rate used (the override when one applied).
type TaxLine struct {
	Name   string  `json:"name"`
	Rate   float64 `json:"rate"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// ValidOrderStatus reports whether s is one of the five valid statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsPaid derives the "paid" display flag from the payment method and status.
// Prepaid methods (card, wallet) show as paid once the order exists; cash on
// delivery shows as paid only after delivery. This is a display convenience,
// not a state transition.
func (o *Order) IsPaid() bool {
	if o.Status == OrderStatusCancelled {
		return false
	}
	switch o.PaymentMethod {
	case PaymentMethodCard, PaymentMethodWallet:
		return true
	case PaymentMethodCOD:
		return o.Status == OrderStatusDelivered
	}
	return o.Status == OrderStatusPaid || o.Status == OrderStatusShipped ||
		o.Status == OrderStatusDelivered
}

// ValidateTotals checks the creation-time identity
// total = subtotal + shipping + tax - discount. It is enforced when the order
// is created and never re-validated afterwards.
func (o *Order) ValidateTotals() error {
	want := o.SubtotalAmount + o.ShippingAmount + o.TaxAmount - o.DiscountAmount
	if math.Abs(o.TotalAmount-want) > 1e-9 {
		return ErrTotalMismatch
	}
	return nil
}
