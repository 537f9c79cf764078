package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lorean-shop/lorean/internal/domain"
)

// CreateNotificationParams holds the fields for a new notification row.
type CreateNotificationParams struct {
	Kind    string
	OrderID uuid.UUID
	Title   string
	Body    string
}

// CreateNotification inserts a notification row for the customer feed.
func (q *Queries) CreateNotification(ctx context.Context, arg CreateNotificationParams) (domain.Notification, error) {
	var n domain.Notification
	row := q.db.QueryRow(ctx,
		`INSERT INTO notifications (kind, order_id, title, body)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, kind, order_id, title, body, read, created_at`,
		arg.Kind, arg.OrderID, arg.Title, arg.Body)
	err := row.Scan(&n.ID, &n.Kind, &n.OrderID, &n.Title, &n.Body, &n.Read, &n.CreatedAt)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}
	return n, nil
}

// ListNotifications returns the newest notifications first.
func (q *Queries) ListNotifications(ctx context.Context, limit int32) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := q.db.Query(ctx,
		`SELECT id, kind, order_id, title, body, read, created_at
		 FROM notifications ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Kind, &n.OrderID, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
