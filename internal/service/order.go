package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/lorean-shop/lorean/internal/domain"
	"github.com/lorean-shop/lorean/internal/realtime"
	"github.com/lorean-shop/lorean/internal/repository"
)

// OrderService provides business logic for order lifecycle operations.
type OrderService interface {
	// GetOrder retrieves a single order by id.
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)

	// GetOrderByShortID retrieves a single order by its shareable reference.
	GetOrderByShortID(ctx context.Context, shortID string) (domain.Order, error)

	// ListOrders returns orders newest first, optionally filtered by status.
	ListOrders(ctx context.Context, status string, limit, offset int32) ([]domain.Order, error)

	// UpdateStatus sets an order's status. Any of the five statuses may be
	// set directly by an administrator; a persistence write that changes no
	// row is a failure, never a silent success.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus string) (domain.Order, error)

	// BulkUpdateStatus applies a status change to each order independently,
	// collecting failures. Succeeded orders stay committed; there is no
	// cross-row atomicity.
	BulkUpdateStatus(ctx context.Context, orderIDs []uuid.UUID, newStatus string) BulkResult

	// DeleteOrder removes an order. Only cancelled orders may be deleted;
	// the guard runs before any store call.
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
}

// BulkResult reports a bulk status update: how many rows changed, how many
// failed, and the per-order failures.
type BulkResult struct {
	Updated int
	Failed  int
	Errors  []BulkError
}

// BulkError is one failed order in a bulk operation.
type BulkError struct {
	OrderID uuid.UUID
	Err     error
}

type orderService struct {
	repo      repository.Querier
	publisher realtime.Publisher
	logger    zerolog.Logger
}

// NewOrderService creates a new OrderService instance.
func NewOrderService(repo repository.Querier, publisher realtime.Publisher, logger zerolog.Logger) OrderService {
	return &orderService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		if isNoRows(err) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (s *orderService) GetOrderByShortID(ctx context.Context, shortID string) (domain.Order, error) {
	order, err := s.repo.GetOrderByShortID(ctx, shortID)
	if err != nil {
		if isNoRows(err) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("failed to get order by short id: %w", err)
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, status string, limit, offset int32) ([]domain.Order, error) {
	if status != "" && !domain.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidOrderStatus
	}
	return s.repo.ListOrders(ctx, repository.ListOrdersParams{
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
}

// UpdateStatus validates the new status, writes it, and runs the status
// side effects: cancelling restores stock, shipping and delivery insert a
// customer notification. The updated row is published on the change feed.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus string) (domain.Order, error) {
	if !domain.ValidOrderStatus(newStatus) {
		return domain.Order{}, domain.ErrInvalidOrderStatus
	}

	// Previous state decides the side effects, so read before writing.
	previous, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.repo.UpdateOrderStatus(ctx, orderID, newStatus); err != nil {
		if isNoRows(err) {
			// The write affected zero rows: the order vanished or the store
			// denied the write. Either way this must surface as a failure.
			return domain.Order{}, domain.NotFound("order.update_status", "order", orderID.String())
		}
		return domain.Order{}, fmt.Errorf("failed to update order status: %w", err)
	}

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	s.runStatusSideEffects(ctx, previous, order)
	s.publishOrder(realtime.OpUpdate, order)
	return order, nil
}

func (s *orderService) BulkUpdateStatus(ctx context.Context, orderIDs []uuid.UUID, newStatus string) BulkResult {
	var result BulkResult
	for _, id := range orderIDs {
		if _, err := s.UpdateStatus(ctx, id, newStatus); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BulkError{OrderID: id, Err: err})
			continue
		}
		result.Updated++
	}
	return result
}

func (s *orderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != domain.OrderStatusCancelled {
		return domain.ErrOrderNotCancelled
	}

	if err := s.repo.DeleteOrder(ctx, orderID); err != nil {
		if isNoRows(err) {
			return domain.NotFound("order.delete", "order", orderID.String())
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if err := s.publisher.Publish(realtime.ChangeEvent{
		Table:    realtime.TableOrders,
		Op:       realtime.OpDelete,
		RecordID: orderID,
	}); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to publish order delete")
	}
	return nil
}

// runStatusSideEffects applies the stock and notification consequences of a
// status change. Side-effect failures are logged, not returned: the status
// write itself already committed.
func (s *orderService) runStatusSideEffects(ctx context.Context, previous, current domain.Order) {
	if previous.Status == current.Status {
		return
	}

	switch current.Status {
	case domain.OrderStatusCancelled:
		for _, item := range current.Items {
			if err := s.repo.RestoreProductStock(ctx, item.ProductID, item.Quantity); err != nil {
				s.logger.Error().Err(err).
					Str("order_id", current.ID.String()).
					Str("product_id", item.ProductID.String()).
					Msg("failed to restore stock for cancelled order")
			}
		}
		s.notify(ctx, current, domain.NotificationOrderCancelled, "Order cancelled",
			fmt.Sprintf("Order %s has been cancelled.", current.ShortID))
	case domain.OrderStatusShipped:
		s.notify(ctx, current, domain.NotificationOrderShipped, "Order shipped",
			fmt.Sprintf("Order %s is on its way.", current.ShortID))
	case domain.OrderStatusDelivered:
		s.notify(ctx, current, domain.NotificationOrderDelivered, "Order delivered",
			fmt.Sprintf("Order %s has been delivered.", current.ShortID))
	}
}

func (s *orderService) notify(ctx context.Context, order domain.Order, kind, title, body string) {
	notification, err := s.repo.CreateNotification(ctx, repository.CreateNotificationParams{
		Kind:    kind,
		OrderID: order.ID,
		Title:   title,
		Body:    body,
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("order_id", order.ID.String()).
			Str("kind", kind).
			Msg("failed to create notification")
		return
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return
	}
	if err := s.publisher.Publish(realtime.ChangeEvent{
		Table:    realtime.TableNotifications,
		Op:       realtime.OpInsert,
		RecordID: notification.ID,
		Payload:  payload,
	}); err != nil {
		s.logger.Error().Err(err).Str("kind", kind).Msg("failed to publish notification event")
	}
}

func (s *orderService) publishOrder(op string, order domain.Order) {
	payload, err := json.Marshal(order)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to encode order event")
		return
	}
	if err := s.publisher.Publish(realtime.ChangeEvent{
		Table:    realtime.TableOrders,
		Op:       op,
		RecordID: order.ID,
		Payload:  payload,
	}); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to publish order event")
	}
}

// isNoRows matches both drivers' no-row sentinels; the repository surfaces
// pgx.ErrNoRows, tests commonly return sql.ErrNoRows.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}
