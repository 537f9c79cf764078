// Package realtime carries row-level change events between the store writers
// and live views. Transport is NATS; consumers must merge events
// idempotently because the feed may redeliver.
package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Change operations.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Tables with change feeds.
const (
	TableOrders        = "orders"
	TableNotifications = "notifications"
)

const subjectPrefix = "lorean.changes."

// ChangeEvent is one row-level change. Payload holds the full row for
// inserts and updates so consumers can merge by RecordID without a
// read-back; deletes carry no payload.
type ChangeEvent struct {
	Table      string          `json:"table"`
	Op         string          `json:"op"`
	RecordID   uuid.UUID       `json:"record_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Publisher emits change events after a store write commits.
type Publisher interface {
	Publish(event ChangeEvent) error
}

// NATSPublisher publishes change events to lorean.changes.<table>.
type NATSPublisher struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

// NewNATSPublisher creates a publisher over an established NATS connection.
func NewNATSPublisher(conn *nats.Conn, logger zerolog.Logger) *NATSPublisher {
	return &NATSPublisher{conn: conn, logger: logger}
}

// Publish sends the event. Failures are returned, never swallowed; callers
// decide whether a missed notification is fatal for their operation.
func (p *NATSPublisher) Publish(event ChangeEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode change event: %w", err)
	}
	if err := p.conn.Publish(subjectPrefix+event.Table, data); err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}

	p.logger.Debug().
		Str("table", event.Table).
		Str("op", event.Op).
		Str("record_id", event.RecordID.String()).
		Msg("change event published")
	return nil
}

// NopPublisher discards events. Used when the realtime feed is disabled.
type NopPublisher struct{}

// Publish discards the event.
func (NopPublisher) Publish(ChangeEvent) error { return nil }

// Subscription is a live change feed for one table.
type Subscription struct {
	sub *nats.Subscription
}

// Subscribe delivers each change event for table to handler. Events that
// fail to decode are logged and dropped rather than crashing the consumer.
func Subscribe(conn *nats.Conn, table string, logger zerolog.Logger, handler func(ChangeEvent)) (*Subscription, error) {
	sub, err := conn.Subscribe(subjectPrefix+table, func(msg *nats.Msg) {
		var event ChangeEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			logger.Error().Err(err).Str("table", table).Msg("dropping malformed change event")
			return
		}
		handler(event)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s changes: %w", table, err)
	}
	return &Subscription{sub: sub}, nil
}

// Unsubscribe stops delivery.
func (s *Subscription) Unsubscribe() error {
	return s.sub.Unsubscribe()
}
