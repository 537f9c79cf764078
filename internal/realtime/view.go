package realtime

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/lorean-shop/lorean/internal/domain"
)

// OrderView is a local, continuously merged copy of the order set, fed by
// the change feed. Merging is by record id, never blind append, so applying
// the same event twice leaves the view unchanged.
type OrderView struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]domain.Order
}

// NewOrderView creates an empty view.
func NewOrderView() *OrderView {
	return &OrderView{orders: make(map[uuid.UUID]domain.Order)}
}

// Seed replaces the whole view with a fresh fetch from the source of truth.
func (v *OrderView) Seed(orders []domain.Order) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.orders = make(map[uuid.UUID]domain.Order, len(orders))
	for _, o := range orders {
		v.orders[o.ID] = o
	}
}

// Apply merges one change event into the view. Unknown tables and malformed
// payloads are ignored; the view only ever reflects decodable order rows.
func (v *OrderView) Apply(event ChangeEvent) {
	if event.Table != TableOrders {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	switch event.Op {
	case OpInsert, OpUpdate:
		var order domain.Order
		if err := json.Unmarshal(event.Payload, &order); err != nil {
			return
		}
		if order.ID == uuid.Nil {
			order.ID = event.RecordID
		}
		v.orders[order.ID] = order
	case OpDelete:
		delete(v.orders, event.RecordID)
	}
}

// Get returns one order from the view.
func (v *OrderView) Get(id uuid.UUID) (domain.Order, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	o, ok := v.orders[id]
	return o, ok
}

// List returns the view's orders, newest first.
func (v *OrderView) List() []domain.Order {
	v.mu.RLock()
	defer v.mu.RUnlock()

	orders := make([]domain.Order, 0, len(v.orders))
	for _, o := range v.orders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

// OptimisticStatus shows a status change in the view before the store
// confirms it: Idle -> Pending(optimistic) -> Committed | RolledBack.
// On commit failure the entry is reconciled by refetching the source of
// truth and replacing it wholesale - never by an inverse patch - then the
// commit error is returned. A failed refetch removes the entry so the view
// never keeps a state that was never saved.
func (v *OrderView) OptimisticStatus(
	ctx context.Context,
	id uuid.UUID,
	status string,
	commit func(ctx context.Context) error,
	refetch func(ctx context.Context) (domain.Order, error),
) error {
	v.mu.Lock()
	if o, ok := v.orders[id]; ok {
		o.Status = status
		v.orders[id] = o
	}
	v.mu.Unlock()

	if err := commit(ctx); err != nil {
		fresh, fetchErr := refetch(ctx)

		v.mu.Lock()
		if fetchErr != nil {
			delete(v.orders, id)
		} else {
			v.orders[fresh.ID] = fresh
		}
		v.mu.Unlock()

		return err
	}
	return nil
}
