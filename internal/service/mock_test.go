package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lorean-shop/lorean/internal/domain"
	"github.com/lorean-shop/lorean/internal/realtime"
	"github.com/lorean-shop/lorean/internal/repository"
)

// mockQuerier implements repository.Querier for testing. Unset methods
// behave like an empty store.
type mockQuerier struct {
	ListTaxRulesFunc                func(ctx context.Context) ([]domain.TaxRule, error)
	ListActiveTaxRulesByCountryFunc func(ctx context.Context, country string) ([]domain.TaxRule, error)
	GetTaxRuleFunc                  func(ctx context.Context, id uuid.UUID) (domain.TaxRule, error)
	CreateTaxRuleFunc               func(ctx context.Context, arg repository.CreateTaxRuleParams) (domain.TaxRule, error)
	UpdateTaxRuleFunc               func(ctx context.Context, arg repository.UpdateTaxRuleParams) (domain.TaxRule, error)
	DeleteTaxRuleFunc               func(ctx context.Context, id uuid.UUID) error

	CreateOrderFunc              func(ctx context.Context, arg repository.CreateOrderParams) (domain.Order, error)
	GetOrderFunc                 func(ctx context.Context, id uuid.UUID) (domain.Order, error)
	GetOrderByShortIDFunc        func(ctx context.Context, shortID string) (domain.Order, error)
	ListOrdersFunc               func(ctx context.Context, arg repository.ListOrdersParams) ([]domain.Order, error)
	ListOrdersCreatedBetweenFunc func(ctx context.Context, from, to *time.Time) ([]domain.Order, error)
	UpdateOrderStatusFunc        func(ctx context.Context, id uuid.UUID, status string) error
	DeleteOrderFunc              func(ctx context.Context, id uuid.UUID) error

	GetProductFunc            func(ctx context.Context, id uuid.UUID) (domain.Product, error)
	GetProductBySlugFunc      func(ctx context.Context, slug string) (domain.Product, error)
	ListProductsFunc          func(ctx context.Context, activeOnly bool) ([]domain.Product, error)
	DecrementProductStockFunc func(ctx context.Context, id uuid.UUID, quantity int32) error
	RestoreProductStockFunc   func(ctx context.Context, id uuid.UUID, quantity int32) error

	CreateReturnRequestFunc func(ctx context.Context, arg repository.CreateReturnRequestParams) (domain.ReturnRequest, error)
	GetReturnRequestFunc    func(ctx context.Context, id uuid.UUID) (domain.ReturnRequest, error)
	ListReturnRequestsFunc  func(ctx context.Context, status string) ([]domain.ReturnRequest, error)
	UpdateReturnStatusFunc  func(ctx context.Context, id uuid.UUID, status string) error

	CreateNotificationFunc func(ctx context.Context, arg repository.CreateNotificationParams) (domain.Notification, error)
	ListNotificationsFunc  func(ctx context.Context, limit int32) ([]domain.Notification, error)

	GetMarketingConfigFunc    func(ctx context.Context) (domain.MarketingConfig, error)
	UpsertMarketingConfigFunc func(ctx context.Context, cfg domain.MarketingConfig) error
}

var _ repository.Querier = (*mockQuerier)(nil)

func (m *mockQuerier) ListTaxRules(ctx context.Context) ([]domain.TaxRule, error) {
	if m.ListTaxRulesFunc != nil {
		return m.ListTaxRulesFunc(ctx)
	}
	return nil, nil
}

func (m *mockQuerier) ListActiveTaxRulesByCountry(ctx context.Context, country string) ([]domain.TaxRule, error) {
	if m.ListActiveTaxRulesByCountryFunc != nil {
		return m.ListActiveTaxRulesByCountryFunc(ctx, country)
	}
	return nil, nil
}

func (m *mockQuerier) GetTaxRule(ctx context.Context, id uuid.UUID) (domain.TaxRule, error) {
	if m.GetTaxRuleFunc != nil {
		return m.GetTaxRuleFunc(ctx, id)
	}
	return domain.TaxRule{}, sql.ErrNoRows
}

func (m *mockQuerier) CreateTaxRule(ctx context.Context, arg repository.CreateTaxRuleParams) (domain.TaxRule, error) {
	if m.CreateTaxRuleFunc != nil {
		return m.CreateTaxRuleFunc(ctx, arg)
	}
	return domain.TaxRule{}, errors.New("not implemented")
}

func (m *mockQuerier) UpdateTaxRule(ctx context.Context, arg repository.UpdateTaxRuleParams) (domain.TaxRule, error) {
	if m.UpdateTaxRuleFunc != nil {
		return m.UpdateTaxRuleFunc(ctx, arg)
	}
	return domain.TaxRule{}, sql.ErrNoRows
}

func (m *mockQuerier) DeleteTaxRule(ctx context.Context, id uuid.UUID) error {
	if m.DeleteTaxRuleFunc != nil {
		return m.DeleteTaxRuleFunc(ctx, id)
	}
	return sql.ErrNoRows
}

func (m *mockQuerier) CreateOrder(ctx context.Context, arg repository.CreateOrderParams) (domain.Order, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, arg)
	}
	return domain.Order{}, errors.New("not implemented")
}

func (m *mockQuerier) GetOrder(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	if m.GetOrderFunc != nil {
		return m.GetOrderFunc(ctx, id)
	}
	return domain.Order{}, sql.ErrNoRows
}

func (m *mockQuerier) GetOrderByShortID(ctx context.Context, shortID string) (domain.Order, error) {
	if m.GetOrderByShortIDFunc != nil {
		return m.GetOrderByShortIDFunc(ctx, shortID)
	}
	return domain.Order{}, sql.ErrNoRows
}

func (m *mockQuerier) ListOrders(ctx context.Context, arg repository.ListOrdersParams) ([]domain.Order, error) {
	if m.ListOrdersFunc != nil {
		return m.ListOrdersFunc(ctx, arg)
	}
	return nil, nil
}

func (m *mockQuerier) ListOrdersCreatedBetween(ctx context.Context, from, to *time.Time) ([]domain.Order, error) {
	if m.ListOrdersCreatedBetweenFunc != nil {
		return m.ListOrdersCreatedBetweenFunc(ctx, from, to)
	}
	return nil, nil
}

func (m *mockQuerier) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	if m.UpdateOrderStatusFunc != nil {
		return m.UpdateOrderStatusFunc(ctx, id, status)
	}
	return sql.ErrNoRows
}

func (m *mockQuerier) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if m.DeleteOrderFunc != nil {
		return m.DeleteOrderFunc(ctx, id)
	}
	return sql.ErrNoRows
}

func (m *mockQuerier) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	if m.GetProductFunc != nil {
		return m.GetProductFunc(ctx, id)
	}
	return domain.Product{}, sql.ErrNoRows
}

func (m *mockQuerier) GetProductBySlug(ctx context.Context, slug string) (domain.Product, error) {
	if m.GetProductBySlugFunc != nil {
		return m.GetProductBySlugFunc(ctx, slug)
	}
	return domain.Product{}, sql.ErrNoRows
}

func (m *mockQuerier) ListProducts(ctx context.Context, activeOnly bool) ([]domain.Product, error) {
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(ctx, activeOnly)
	}
	return nil, nil
}

func (m *mockQuerier) DecrementProductStock(ctx context.Context, id uuid.UUID, quantity int32) error {
	if m.DecrementProductStockFunc != nil {
		return m.DecrementProductStockFunc(ctx, id, quantity)
	}
	return nil
}

func (m *mockQuerier) RestoreProductStock(ctx context.Context, id uuid.UUID, quantity int32) error {
	if m.RestoreProductStockFunc != nil {
		return m.RestoreProductStockFunc(ctx, id, quantity)
	}
	return nil
}

func (m *mockQuerier) CreateReturnRequest(ctx context.Context, arg repository.CreateReturnRequestParams) (domain.ReturnRequest, error) {
	if m.CreateReturnRequestFunc != nil {
		return m.CreateReturnRequestFunc(ctx, arg)
	}
	return domain.ReturnRequest{}, errors.New("not implemented")
}

func (m *mockQuerier) GetReturnRequest(ctx context.Context, id uuid.UUID) (domain.ReturnRequest, error) {
	if m.GetReturnRequestFunc != nil {
		return m.GetReturnRequestFunc(ctx, id)
	}
	return domain.ReturnRequest{}, sql.ErrNoRows
}

func (m *mockQuerier) ListReturnRequests(ctx context.Context, status string) ([]domain.ReturnRequest, error) {
	if m.ListReturnRequestsFunc != nil {
		return m.ListReturnRequestsFunc(ctx, status)
	}
	return nil, nil
}

func (m *mockQuerier) UpdateReturnStatus(ctx context.Context, id uuid.UUID, status string) error {
	if m.UpdateReturnStatusFunc != nil {
		return m.UpdateReturnStatusFunc(ctx, id, status)
	}
	return sql.ErrNoRows
}

func (m *mockQuerier) CreateNotification(ctx context.Context, arg repository.CreateNotificationParams) (domain.Notification, error) {
	if m.CreateNotificationFunc != nil {
		return m.CreateNotificationFunc(ctx, arg)
	}
	return domain.Notification{ID: uuid.New(), Kind: arg.Kind, OrderID: arg.OrderID}, nil
}

func (m *mockQuerier) ListNotifications(ctx context.Context, limit int32) ([]domain.Notification, error) {
	if m.ListNotificationsFunc != nil {
		return m.ListNotificationsFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockQuerier) GetMarketingConfig(ctx context.Context) (domain.MarketingConfig, error) {
	if m.GetMarketingConfigFunc != nil {
		return m.GetMarketingConfigFunc(ctx)
	}
	return domain.DefaultMarketingConfig(), nil
}

func (m *mockQuerier) UpsertMarketingConfig(ctx context.Context, cfg domain.MarketingConfig) error {
	if m.UpsertMarketingConfigFunc != nil {
		return m.UpsertMarketingConfigFunc(ctx, cfg)
	}
	return nil
}

// capturePublisher records published change events.
type capturePublisher struct {
	mu     sync.Mutex
	events []realtime.ChangeEvent
}

func (p *capturePublisher) Publish(event realtime.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) Events() []realtime.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]realtime.ChangeEvent, len(p.events))
	copy(out, p.events)
	return out
}
