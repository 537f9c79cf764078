package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Session collections expire after 30 days of inactivity, matching the
// storefront session lifetime.
const sessionTTL = 30 * 24 * time.Hour

// RedisStore persists carts and wishlists in Redis, one key per session.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func cartKey(sessionID string) string     { return "cart:" + sessionID }
func wishlistKey(sessionID string) string { return "wishlist:" + sessionID }

// LoadCart returns the session's cart, or an empty cart when the key is
// missing or expired.
func (s *RedisStore) LoadCart(ctx context.Context, sessionID string) (*Cart, error) {
	var c Cart
	if err := s.load(ctx, cartKey(sessionID), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// SaveCart stores the session's cart and refreshes its TTL.
func (s *RedisStore) SaveCart(ctx context.Context, sessionID string, c *Cart) error {
	return s.save(ctx, cartKey(sessionID), c)
}

// LoadWishlist returns the session's wishlist, or an empty one.
func (s *RedisStore) LoadWishlist(ctx context.Context, sessionID string) (*Wishlist, error) {
	var w Wishlist
	if err := s.load(ctx, wishlistKey(sessionID), &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// SaveWishlist stores the session's wishlist and refreshes its TTL.
func (s *RedisStore) SaveWishlist(ctx context.Context, sessionID string, w *Wishlist) error {
	return s.save(ctx, wishlistKey(sessionID), w)
}

func (s *RedisStore) load(ctx context.Context, key string, dest any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
