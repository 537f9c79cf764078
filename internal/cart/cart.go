// Package cart holds the shopper's cart and wishlist collections. The
// collection logic is pure; persistence across reloads goes through the
// Store interface so it is independently testable.
package cart

import (
	"github.com/google/uuid"

	"github.com/lorean-shop/lorean/internal/domain"
)

// Item is a cart line: a product snapshot plus a quantity.
type Item struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int32     `json:"quantity"`
}

// Cart is an ordered collection of items, at most one entry per product.
type Cart struct {
	Items []Item `json:"items"`
}

// Add puts a product in the cart. If the product is already present its
// quantity is incremented rather than a duplicate appended. Quantities
// below 1 are treated as 1.
func (c *Cart) Add(product domain.Product, quantity int32) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == product.ID {
			c.Items[i].Quantity += quantity
			return
		}
	}
	c.Items = append(c.Items, Item{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
	})
}

// SetQuantity adjusts an item's quantity by delta, clamped to a floor of 1.
// Decrementing can never remove the item; removal is an explicit operation.
// Unknown products are a no-op.
func (c *Cart) SetQuantity(productID uuid.UUID, delta int32) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			q := c.Items[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			c.Items[i].Quantity = q
			return
		}
	}
}

// Remove deletes the entry for productID. Absent products are a no-op.
func (c *Cart) Remove(productID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Subtotal is recomputed from the items on every call, never cached.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount is the sum of all quantities.
func (c *Cart) ItemCount() int32 {
	var count int32
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// WishlistItem is a product snapshot without a quantity.
type WishlistItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
}

// Wishlist is an ordered collection of product snapshots, at most one entry
// per product.
type Wishlist struct {
	Items []WishlistItem `json:"items"`
}

// Add puts a product on the wishlist. Adding a product already present is a
// no-op duplicate guard.
func (w *Wishlist) Add(product domain.Product) {
	for _, item := range w.Items {
		if item.ProductID == product.ID {
			return
		}
	}
	w.Items = append(w.Items, WishlistItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
	})
}

// Remove deletes the entry for productID. Absent products are a no-op.
func (w *Wishlist) Remove(productID uuid.UUID) {
	for i := range w.Items {
		if w.Items[i].ProductID == productID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			return
		}
	}
}

// Contains reports whether productID is on the wishlist.
func (w *Wishlist) Contains(productID uuid.UUID) bool {
	for _, item := range w.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
