package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification kinds emitted by the order lifecycle.
const (
	NotificationOrderPlaced    = "order_placed"
	NotificationOrderShipped   = "order_shipped"
	NotificationOrderDelivered = "order_delivered"
	NotificationOrderCancelled = "order_cancelled"
	NotificationReturnUpdated  = "return_updated"
)

// Notification is a row in the customer-facing notification feed. Delivery
// to devices is an external concern; this core only records and publishes.
type Notification struct {
	ID      uuid.UUID
	Kind    string
	OrderID uuid.UUID
	Title   string
	Body    string
	Read    bool

	CreatedAt time.Time
}
