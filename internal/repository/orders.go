package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lorean-shop/lorean/internal/domain"
)

const orderColumns = `id, short_id, status, items, subtotal_amount, shipping_amount,
	tax_amount, discount_amount, total_amount, tax_breakdown, payment_method,
	customer_email, provider_payment_id, created_at, updated_at`

// CreateOrderParams holds the frozen state of a new order. Totals must
// already satisfy total = subtotal + shipping + tax - discount; the service
// layer validates that before calling.
type CreateOrderParams struct {
	ShortID        string
	Items          []domain.OrderItem
	SubtotalAmount float64
	ShippingAmount float64
	TaxAmount      float64
	DiscountAmount float64
	TotalAmount    float64
	TaxBreakdown   []domain.TaxLine
	PaymentMethod     string
	CustomerEmail     string
	ProviderPaymentID string
}

// ListOrdersParams filters the admin order listing.
type ListOrdersParams struct {
	Status string // empty = all statuses
	Limit  int32
	Offset int32
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	var items, breakdown []byte
	err := row.Scan(&o.ID, &o.ShortID, &o.Status, &items, &o.SubtotalAmount,
		&o.ShippingAmount, &o.TaxAmount, &o.DiscountAmount, &o.TotalAmount,
		&breakdown, &o.PaymentMethod, &o.CustomerEmail, &o.ProviderPaymentID,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Order{}, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return domain.Order{}, fmt.Errorf("failed to decode order items: %w", err)
		}
	}
	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &o.TaxBreakdown); err != nil {
			return domain.Order{}, fmt.Errorf("failed to decode tax breakdown: %w", err)
		}
	}
	return o, nil
}

// CreateOrder inserts a new order with status pending and returns the stored row.
func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (domain.Order, error) {
	items, err := json.Marshal(arg.Items)
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to encode order items: %w", err)
	}
	breakdown, err := json.Marshal(arg.TaxBreakdown)
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to encode tax breakdown: %w", err)
	}

	row := q.db.QueryRow(ctx,
		`INSERT INTO orders (short_id, status, items, subtotal_amount, shipping_amount,
		   tax_amount, discount_amount, total_amount, tax_breakdown, payment_method,
		   customer_email, provider_payment_id)
		 VALUES ($1, 'pending', $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+orderColumns,
		arg.ShortID, items, arg.SubtotalAmount, arg.ShippingAmount, arg.TaxAmount,
		arg.DiscountAmount, arg.TotalAmount, breakdown, arg.PaymentMethod,
		arg.CustomerEmail, arg.ProviderPaymentID)
	return scanOrder(row)
}

// GetOrder returns a single order by id.
func (q *Queries) GetOrder(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	row := q.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return scanOrder(row)
}

// GetOrderByShortID returns a single order by its human-shareable reference.
func (q *Queries) GetOrderByShortID(ctx context.Context, shortID string) (domain.Order, error) {
	row := q.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE short_id = $1`, shortID)
	return scanOrder(row)
}

// ListOrders returns orders newest first, optionally filtered by status.
func (q *Queries) ListOrders(ctx context.Context, arg ListOrdersParams) ([]domain.Order, error) {
	limit := arg.Limit
	if limit <= 0 {
		limit = 50
	}

	var rows pgx.Rows
	var err error
	if arg.Status != "" {
		rows, err = q.db.Query(ctx,
			`SELECT `+orderColumns+` FROM orders WHERE status = $1
			 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			arg.Status, limit, arg.Offset)
	} else {
		rows, err = q.db.Query(ctx,
			`SELECT `+orderColumns+` FROM orders
			 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
			limit, arg.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// ListOrdersCreatedBetween returns orders created inside the inclusive
// window. Nil bounds leave that side open. The reporting aggregator consumes
// this, so no pagination: reports want the full window.
func (q *Queries) ListOrdersCreatedBetween(ctx context.Context, from, to *time.Time) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var conds []string
	var args []any
	if from != nil {
		args = append(args, *from)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at"

	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders in window: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// UpdateOrderStatus sets an order's status. A write that matches no row
// (missing id or denied) returns pgx.ErrNoRows so callers can distinguish
// it from a successful write of the same value.
func (q *Queries) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := q.db.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteOrder removes an order row. The cancelled-only guard lives in the
// service layer; this method only reports whether a row was removed.
func (q *Queries) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
