package cart_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorean-shop/lorean/internal/cart"
	"github.com/lorean-shop/lorean/internal/domain"
)

func product(name string, price float64) domain.Product {
	return domain.Product{ID: uuid.New(), Name: name, Price: price}
}

func TestCart_AddIncrementsExistingEntry(t *testing.T) {
	p := product("Ceramic Mug", 18.50)
	var c cart.Cart

	c.Add(p, 1)
	c.Add(p, 2)

	require.Len(t, c.Items, 1, "adding an existing product must not duplicate the entry")
	assert.Equal(t, int32(3), c.Items[0].Quantity)
}

func TestCart_AddSnapshotsPrice(t *testing.T) {
	p := product("Desk Lamp", 40)
	var c cart.Cart

	c.Add(p, 1)
	p.Price = 60 // later catalog price change

	assert.Equal(t, 40.0, c.Items[0].Price, "cart keeps the price at add time")
}

func TestCart_QuantityFloor(t *testing.T) {
	p := product("Notebook", 5)
	var c cart.Cart
	c.Add(p, 1)

	c.SetQuantity(p.ID, -5)

	assert.Equal(t, int32(1), c.Items[0].Quantity, "quantity clamps to 1, never 0 or negative")

	c.SetQuantity(p.ID, 4)
	assert.Equal(t, int32(5), c.Items[0].Quantity)

	c.SetQuantity(p.ID, -100)
	assert.Equal(t, int32(1), c.Items[0].Quantity)
}

func TestCart_SetQuantityUnknownProductIsNoop(t *testing.T) {
	var c cart.Cart
	c.Add(product("Notebook", 5), 1)

	c.SetQuantity(uuid.New(), 3)

	assert.Equal(t, int32(1), c.ItemCount())
}

func TestCart_Remove(t *testing.T) {
	p1 := product("Notebook", 5)
	p2 := product("Pen", 2)
	var c cart.Cart
	c.Add(p1, 1)
	c.Add(p2, 1)

	c.Remove(p1.ID)
	require.Len(t, c.Items, 1)
	assert.Equal(t, p2.ID, c.Items[0].ProductID)

	// Removing an absent product is a no-op.
	c.Remove(p1.ID)
	assert.Len(t, c.Items, 1)
}

func TestCart_DerivedTotals(t *testing.T) {
	p1 := product("Notebook", 5)
	p2 := product("Pen", 2.5)
	var c cart.Cart
	c.Add(p1, 2)
	c.Add(p2, 3)

	assert.Equal(t, 17.5, c.Subtotal(), "2*5 + 3*2.5")
	assert.Equal(t, int32(5), c.ItemCount())

	c.SetQuantity(p2.ID, -1)
	assert.Equal(t, 15.0, c.Subtotal(), "totals recompute on every read")
}

func TestWishlist_DuplicateGuard(t *testing.T) {
	p := product("Poster", 12)
	var w cart.Wishlist

	w.Add(p)
	w.Add(p)

	assert.Len(t, w.Items, 1)
	assert.True(t, w.Contains(p.ID))

	w.Remove(p.ID)
	assert.False(t, w.Contains(p.ID))
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	p := product("Notebook", 5)

	loaded, err := store.LoadCart(ctx, "session-1")
	require.NoError(t, err)
	assert.Empty(t, loaded.Items, "new sessions start empty")

	loaded.Add(p, 2)
	require.NoError(t, store.SaveCart(ctx, "session-1", loaded))

	// A "reload" sees the saved state; other sessions do not.
	again, err := store.LoadCart(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), again.ItemCount())

	other, err := store.LoadCart(ctx, "session-2")
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}

func TestMemoryStore_SavedCartIsIsolatedFromCaller(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	p := product("Notebook", 5)

	c := &cart.Cart{}
	c.Add(p, 1)
	require.NoError(t, store.SaveCart(ctx, "s", c))

	c.SetQuantity(p.ID, 10) // mutate after save

	reloaded, err := store.LoadCart(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, int32(1), reloaded.Items[0].Quantity)
}
