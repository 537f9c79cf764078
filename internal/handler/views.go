package handler

import (
	"time"

	"github.com/lorean-shop/lorean/internal/domain"
)

// OrderView is the JSON shape of an order on both surfaces. Paid is the
// derived display flag, not a stored column.
type OrderView struct {
	ID             string             `json:"id"`
	ShortID        string             `json:"short_id"`
	Status         string             `json:"status"`
	Paid           bool               `json:"paid"`
	Items          []domain.OrderItem `json:"items"`
	SubtotalAmount float64            `json:"subtotal_amount"`
	ShippingAmount float64            `json:"shipping_amount"`
	TaxAmount      float64            `json:"tax_amount"`
	DiscountAmount float64            `json:"discount_amount"`
	TotalAmount    float64            `json:"total_amount"`
	TaxBreakdown   []domain.TaxLine   `json:"tax_breakdown"`
	PaymentMethod  string             `json:"payment_method"`
	CustomerEmail  string             `json:"customer_email,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// NewOrderView converts an order for JSON output. The provider payment id
// stays internal.
func NewOrderView(o domain.Order) OrderView {
	return OrderView{
		ID:             o.ID.String(),
		ShortID:        o.ShortID,
		Status:         o.Status,
		Paid:           o.IsPaid(),
		Items:          o.Items,
		SubtotalAmount: o.SubtotalAmount,
		ShippingAmount: o.ShippingAmount,
		TaxAmount:      o.TaxAmount,
		DiscountAmount: o.DiscountAmount,
		TotalAmount:    o.TotalAmount,
		TaxBreakdown:   o.TaxBreakdown,
		PaymentMethod:  o.PaymentMethod,
		CustomerEmail:  o.CustomerEmail,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

// NewOrderViews converts a slice of orders.
func NewOrderViews(orders []domain.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views
}

// TaxRuleView is the JSON shape of a tax rule.
type TaxRuleView struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Type             string             `json:"type"`
	Rate             float64            `json:"rate"`
	Country          string             `json:"country"`
	Region           string             `json:"region,omitempty"`
	Active           bool               `json:"active"`
	Priority         int32              `json:"priority"`
	ProductOverrides map[string]float64 `json:"product_overrides,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

func NewTaxRuleView(r domain.TaxRule) TaxRuleView {
	return TaxRuleView{
		ID:               r.ID.String(),
		Name:             r.Name,
		Type:             r.Type,
		Rate:             r.Rate,
		Country:          r.Country,
		Region:           r.Region,
		Active:           r.Active,
		Priority:         r.Priority,
		ProductOverrides: r.ProductOverrides,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func NewTaxRuleViews(rules []domain.TaxRule) []TaxRuleView {
	views := make([]TaxRuleView, 0, len(rules))
	for _, r := range rules {
		views = append(views, NewTaxRuleView(r))
	}
	return views
}

// ReturnView is the JSON shape of a return request.
type ReturnView struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Reason    string    `json:"reason"`
	Details   string    `json:"details,omitempty"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewReturnView(r domain.ReturnRequest) ReturnView {
	return ReturnView{
		ID:        r.ID.String(),
		OrderID:   r.OrderID.String(),
		Reason:    r.Reason,
		Details:   r.Details,
		Amount:    r.Amount,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func NewReturnViews(requests []domain.ReturnRequest) []ReturnView {
	views := make([]ReturnView, 0, len(requests))
	for _, r := range requests {
		views = append(views, NewReturnView(r))
	}
	return views
}

// ProductView is the JSON shape of a storefront product.
type ProductView struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Slug        string               `json:"slug"`
	Description string               `json:"description,omitempty"`
	Price       float64              `json:"price"`
	Stock       int32                `json:"stock"`
	Active      bool                 `json:"active"`
	Specs       []domain.ProductSpec `json:"specs,omitempty"`
	FAQs        []domain.ProductFAQ  `json:"faqs,omitempty"`
	Extensions  map[string]string    `json:"extensions,omitempty"`
}

func NewProductView(p domain.Product) ProductView {
	return ProductView{
		ID:          p.ID.String(),
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Active:      p.Active,
		Specs:       p.Specs,
		FAQs:        p.FAQs,
		Extensions:  p.Extensions,
	}
}

func NewProductViews(products []domain.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p))
	}
	return views
}

// NotificationView is the JSON shape of a back-office notification.
type NotificationView struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	OrderID   string    `json:"order_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNotificationView(n domain.Notification) NotificationView {
	return NotificationView{
		ID:        n.ID.String(),
		Kind:      n.Kind,
		OrderID:   n.OrderID.String(),
		Title:     n.Title,
		Body:      n.Body,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func NewNotificationViews(notifications []domain.Notification) []NotificationView {
	views := make([]NotificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, NewNotificationView(n))
	}
	return views
}
