package cart

import (
	"context"
	"sync"
)

// Store persists a session's cart and wishlist across reloads. Sessions are
// keyed by an opaque token; the collections are deliberately not shared
// across devices or synced to an account.
type Store interface {
	LoadCart(ctx context.Context, sessionID string) (*Cart, error)
	SaveCart(ctx context.Context, sessionID string, c *Cart) error

	LoadWishlist(ctx context.Context, sessionID string) (*Wishlist, error)
	SaveWishlist(ctx context.Context, sessionID string, w *Wishlist) error
}

// MemoryStore is an in-process Store for tests and single-node development.
type MemoryStore struct {
	mu        sync.RWMutex
	carts     map[string]Cart
	wishlists map[string]Wishlist
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts:     make(map[string]Cart),
		wishlists: make(map[string]Wishlist),
	}
}

// LoadCart returns the session's cart, or an empty cart for new sessions.
func (s *MemoryStore) LoadCart(ctx context.Context, sessionID string) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.carts[sessionID]
	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	return &Cart{Items: items}, nil
}

// SaveCart stores the session's cart.
func (s *MemoryStore) SaveCart(ctx context.Context, sessionID string, c *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	s.carts[sessionID] = Cart{Items: items}
	return nil
}

// LoadWishlist returns the session's wishlist, or an empty one.
func (s *MemoryStore) LoadWishlist(ctx context.Context, sessionID string) (*Wishlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w := s.wishlists[sessionID]
	items := make([]WishlistItem, len(w.Items))
	copy(items, w.Items)
	return &Wishlist{Items: items}, nil
}

// SaveWishlist stores the session's wishlist.
func (s *MemoryStore) SaveWishlist(ctx context.Context, sessionID string, w *Wishlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]WishlistItem, len(w.Items))
	copy(items, w.Items)
	s.wishlists[sessionID] = Wishlist{Items: items}
	return nil
}
