package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lorean-shop/lorean/internal/domain"
)

// DBTX is the subset of pgx shared by a pool and a transaction, so the same
// query methods run in either.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries is the Postgres-backed store implementation.
type Queries struct {
	db DBTX
}

// New creates a Queries instance over a pool or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries bound to the given transaction.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

// Querier is the store interface consumed by services and handlers.
// A write that matches no row is reported as pgx.ErrNoRows by the Update*
// and Delete* methods; callers must surface that as a failure, never as
// success.
type Querier interface {
	// Tax rules
	ListTaxRules(ctx context.Context) ([]domain.TaxRule, error)
	ListActiveTaxRulesByCountry(ctx context.Context, country string) ([]domain.TaxRule, error)
	GetTaxRule(ctx context.Context, id uuid.UUID) (domain.TaxRule, error)
	CreateTaxRule(ctx context.Context, arg CreateTaxRuleParams) (domain.TaxRule, error)
	UpdateTaxRule(ctx context.Context, arg UpdateTaxRuleParams) (domain.TaxRule, error)
	DeleteTaxRule(ctx context.Context, id uuid.UUID) error

	// Orders
	CreateOrder(ctx context.Context, arg CreateOrderParams) (domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (domain.Order, error)
	GetOrderByShortID(ctx context.Context, shortID string) (domain.Order, error)
	ListOrders(ctx context.Context, arg ListOrdersParams) ([]domain.Order, error)
	ListOrdersCreatedBetween(ctx context.Context, from, to *time.Time) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error

	// Products
	GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (domain.Product, error)
	ListProducts(ctx context.Context, activeOnly bool) ([]domain.Product, error)
	DecrementProductStock(ctx context.Context, id uuid.UUID, quantity int32) error
	RestoreProductStock(ctx context.Context, id uuid.UUID, quantity int32) error

	// Return requests
	CreateReturnRequest(ctx context.Context, arg CreateReturnRequestParams) (domain.ReturnRequest, error)
	GetReturnRequest(ctx context.Context, id uuid.UUID) (domain.ReturnRequest, error)
	ListReturnRequests(ctx context.Context, status string) ([]domain.ReturnRequest, error)
	UpdateReturnStatus(ctx context.Context, id uuid.UUID, status string) error

	// Notifications
	CreateNotification(ctx context.Context, arg CreateNotificationParams) (domain.Notification, error)
	ListNotifications(ctx context.Context, limit int32) ([]domain.Notification, error)

	// Marketing
	GetMarketingConfig(ctx context.Context) (domain.MarketingConfig, error)
	UpsertMarketingConfig(ctx context.Context, cfg domain.MarketingConfig) error
}

var _ Querier = (*Queries)(nil)
