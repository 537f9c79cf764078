package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorean-shop/lorean/internal/domain"
	"github.com/lorean-shop/lorean/internal/realtime"
	"github.com/lorean-shop/lorean/internal/repository"
)

func testOrder(id uuid.UUID, status string) domain.Order {
	return domain.Order{
		ID:      id,
		ShortID: "ORD-20250601-TEST",
		Status:  status,
		Items: []domain.OrderItem{
			{ProductID: uuid.New(), Name: "Walnut Desk Organizer", Quantity: 2, Price: 34.00},
		},
		SubtotalAmount: 68.00,
		ShippingAmount: 7.95,
		TaxAmount:      13.60,
		TotalAmount:    89.55,
		PaymentMethod:  domain.PaymentMethodCard,
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown status", func(t *testing.T) {
		svc := NewOrderService(&mockQuerier{}, realtime.NopPublisher{}, zerolog.Nop())

		_, err := svc.UpdateStatus(ctx, uuid.New(), "archived")
		assert.ErrorIs(t, err, domain.ErrInvalidOrderStatus)
	})

	t.Run("zero rows changed surfaces as failure", func(t *testing.T) {
		orderID := uuid.New()
		repo := &mockQuerier{
			GetOrderFunc: func(ctx context.Context, id uuid.UUID) (domain.Order, error) {
				return testOrder(orderID, domain.OrderStatusPending), nil
			},
			UpdateOrderStatusFunc: func(ctx context.Context, id uuid.UUID, status string) error {
				return pgx.ErrNoRows
			},
		}
		svc := NewOrderService(repo, realtime.NopPublisher{}, zerolog.Nop())

		_, err := svc.UpdateStatus(ctx, orderID, domain.OrderStatusPaid)
		require.Error(t, err)
		assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
	})

	t.Run("cancelling restores stock and notifies", func(t *testing.T) {
		orderID := uuid.New()
		order := testOrder(orderID, domain.OrderStatusPaid)
		status := order.Status

		var restored int32
		var notificationKinds []string
		repo := &mockQuerier{
			GetOrderFunc: func(ctx context.Context, id uuid.UUID) (domain.Order, error) {
				o := order
				o.Status = status
				return o, nil
			},
			UpdateOrderStatusFunc: func(ctx context.Context, id uuid.UUID, s string) error {
				status = s
				return nil
			},
			RestoreProductStockFunc: func(ctx context.Context, id uuid.UUID, quantity int32) error {
				restored += quantity
				return nil
			},
			CreateNotificationFunc: func(ctx context.Context, arg repository.CreateNotificationParams) (domain.Notification, error) {
				notificationKinds = append(notificationKinds, arg.Kind)
				return domain.Notification{ID: uuid.New(), Kind: arg.Kind, OrderID: arg.OrderID}, nil
			},
		}
		pub := &capturePublisher{}
		svc := NewOrderService(repo, pub, zerolog.Nop())

		updated, err := svc.UpdateStatus(ctx, orderID, domain.OrderStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusCancelled, updated.Status)
		assert.Equal(t, int32(2), restored)
		assert.Equal(t, []string{domain.NotificationOrderCancelled}, notificationKinds)

		events := pub.Events()
		require.NotEmpty(t, events)
		last := events[len(events)-1]
		assert.Equal(t, realtime.TableOrders, last.Table)
		assert.Equal(t, realtime.OpUpdate, last.Op)
		assert.Equal(t, orderID, last.RecordID)
	})

	t.Run("shipping notifies without touching stock", func(t *testing.T) {
		orderID := uuid.New()
		status := domain.OrderStatusPaid

		var notificationKinds []string
		repo := &mockQuerier{
			GetOrderFunc: func(ctx context.Context, id uuid.UUID) (domain.Order, error) {
				return testOrder(orderID, status), nil
			},
			UpdateOrderStatusFunc: func(ctx context.Context, id uuid.UUID, s string) error {
				status = s
				return nil
			},
			RestoreProductStockFunc: func(ctx context.Context, id uuid.UUID, quantity int32) error {
				t.Fatal("stock must not be restored when shipping")
				return nil
			},
			CreateNotificationFunc: func(ctx context.Context, arg repository.CreateNotificationParams) (domain.Notification, error) {
				notificationKinds = append(notificationKinds, arg.Kind)
				return domain.Notification{ID: uuid.New(), Kind: arg.Kind}, nil
			},
		}
		svc := NewOrderService(repo, realtime.NopPublisher{}, zerolog.Nop())

		_, err := svc.UpdateStatus(ctx, orderID, domain.OrderStatusShipped)
		require.NoError(t, err)
		assert.Equal(t, []string{domain.NotificationOrderShipped}, notificationKinds)
	})

	t.Run("re-setting the same status skips side effects", func(t *testing.T) {
		orderID := uuid.New()
		repo := &mockQuerier{
			GetOrderFunc: func(ctx context.Context, id uuid.UUID) (domain.Order, error) {
				return testOrder(orderID, domain.OrderStatusShipped), nil
			},
			UpdateOrderStatusFunc: func(ctx context.Context, id uuid.UUID, s string) error {
				return nil
			},
			CreateNotificationFunc: func(ctx context.Context, arg repository.CreateNotificationParams) (domain.Notification, error) {
				t.Fatal("no notification for an unchanged status")
				return domain.Notification{}, nil
			},
		}
		svc := NewOrderService(repo, realtime.NopPublisher{}, zerolog.Nop())

		_, err := svc.UpdateStatus(ctx, orderID, domain.OrderStatusShipped)
		require.NoError(t, err)
	})
}

func TestOrderService_BulkUpdateStatus(t *testing.T) {
	ctx := context.Background()

	goodID := uuid.New()
	missingID := uuid.New()
	orders := map[uuid.UUID]domain.Order{
		goodID: testOrder(goodID, domain.OrderStatusPending),
	}
	repo := &mockQuerier{
		GetOrderFunc: func(ctx context.Context, id uuid.UUID) (domain.Order, error) {
			o, ok := orders[id]
			if !ok {
				return domain.Order{}, pgx.ErrNoRows
			}
			return o, nil
		},
		UpdateOrderStatusFunc: func(ctx context.Context, id uuid.UUID, s string) error {
			o, ok := orders[id]
			if !ok {
				return pgx.ErrNoRows
			}
			o.Status = s
			orders[id] = o
			return nil
		},
	}
	svc := NewOrderService(repo, realtime.NopPublisher{}, zerolog.Nop())

	result := svc.BulkUpdateStatus(ctx, []uuid.UUID{goodID, missingID}, domain.OrderStatusPaid)

	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, missingID, result.Errors[0].OrderID)
	assert.ErrorIs(t, result.Errors[0].Err, domain.ErrOrderNotFound)

	// The succeeded row stays committed despite the neighbor's failure.
	assert.Equal(t, domain.OrderStatusPaid, orders[goodID].Status)
}

func TestOrderService_DeleteOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("non-cancelled order is rejected before the store delete", func(t *testing.T) {
		orderID := uuid.New()
		repo := &mockQuerier{
			GetOrderFunc: func(ctx context.Context, id uuid.UUID) (domain.Order, error) {
				return testOrder(orderID, domain.OrderStatusShipped), nil
			},
			DeleteOrderFunc: func(ctx context.Context, id uuid.UUID) error {
				t.Fatal("store delete must not be reached for a shipped order")
				return nil
			},
		}
		svc := NewOrderService(repo, realtime.NopPublisher{}, zerolog.Nop())

		err := svc.DeleteOrder(ctx, orderID)
		assert.ErrorIs(t, err, domain.ErrOrderNotCancelled)
	})

	t.Run("cancelled order is deleted and a delete event published", func(t *testing.T) {
		orderID := uuid.New()
		deleted := false
		repo := &mockQuerier{
			GetOrderFunc: func(ctx context.Context, id uuid.UUID) (domain.Order, error) {
				return testOrder(orderID, domain.OrderStatusCancelled), nil
			},
			DeleteOrderFunc: func(ctx context.Context, id uuid.UUID) error {
				deleted = true
				return nil
			},
		}
		pub := &capturePublisher{}
		svc := NewOrderService(repo, pub, zerolog.Nop())

		require.NoError(t, svc.DeleteOrder(ctx, orderID))
		assert.True(t, deleted)

		events := pub.Events()
		require.Len(t, events, 1)
		assert.Equal(t, realtime.OpDelete, events[0].Op)
		assert.Equal(t, orderID, events[0].RecordID)
	})

	t.Run("missing order maps to not found", func(t *testing.T) {
		svc := NewOrderService(&mockQuerier{}, realtime.NopPublisher{}, zerolog.Nop())

		err := svc.DeleteOrder(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})
}

func TestOrderService_ListOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an unknown status filter", func(t *testing.T) {
		svc := NewOrderService(&mockQuerier{}, realtime.NopPublisher{}, zerolog.Nop())

		_, err := svc.ListOrders(ctx, "archived", 20, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidOrderStatus)
	})

	t.Run("passes the filter through", func(t *testing.T) {
		var got repository.ListOrdersParams
		repo := &mockQuerier{
			ListOrdersFunc: func(ctx context.Context, arg repository.ListOrdersParams) ([]domain.Order, error) {
				got = arg
				return []domain.Order{testOrder(uuid.New(), domain.OrderStatusPaid)}, nil
			},
		}
		svc := NewOrderService(repo, realtime.NopPublisher{}, zerolog.Nop())

		orders, err := svc.ListOrders(ctx, domain.OrderStatusPaid, 20, 40)
		require.NoError(t, err)
		assert.Len(t, orders, 1)
		assert.Equal(t, repository.ListOrdersParams{Status: domain.OrderStatusPaid, Limit: 20, Offset: 40}, got)
	})
}

func TestOrderService_GetOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("wraps store errors", func(t *testing.T) {
		boom := errors.New("connection reset")
		repo := &mockQuerier{
			GetOrderFunc: func(ctx context.Context, id uuid.UUID) (domain.Order, error) {
				return domain.Order{}, boom
			},
		}
		svc := NewOrderService(repo, realtime.NopPublisher{}, zerolog.Nop())

		_, err := svc.GetOrder(ctx, uuid.New())
		assert.ErrorIs(t, err, boom)
	})

	t.Run("short id lookup maps missing rows", func(t *testing.T) {
		svc := NewOrderService(&mockQuerier{}, realtime.NopPublisher{}, zerolog.Nop())

		_, err := svc.GetOrderByShortID(ctx, "ORD-20250601-ZZZZ")
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})
}
