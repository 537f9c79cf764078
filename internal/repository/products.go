package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lorean-shop/lorean/internal/domain"
)

const productColumns = `id, name, slug, description, price, stock, active, specs, faqs, extensions, created_at, updated_at`

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	var specs, faqs, extensions []byte
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Stock,
		&p.Active, &specs, &faqs, &extensions, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Product{}, err
	}
	if len(specs) > 0 {
		if err := json.Unmarshal(specs, &p.Specs); err != nil {
			return domain.Product{}, fmt.Errorf("failed to decode product specs: %w", err)
		}
	}
	if len(faqs) > 0 {
		if err := json.Unmarshal(faqs, &p.FAQs); err != nil {
			return domain.Product{}, fmt.Errorf("failed to decode product faqs: %w", err)
		}
	}
	if len(extensions) > 0 {
		if err := json.Unmarshal(extensions, &p.Extensions); err != nil {
			return domain.Product{}, fmt.Errorf("failed to decode product extensions: %w", err)
		}
	}
	return p, nil
}

// GetProduct returns a single product by id.
func (q *Queries) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	row := q.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

// GetProductBySlug returns a single product by its URL slug.
func (q *Queries) GetProductBySlug(ctx context.Context, slug string) (domain.Product, error) {
	row := q.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	return scanProduct(row)
}

// ListProducts returns products ordered by name.
func (q *Queries) ListProducts(ctx context.Context, activeOnly bool) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name`
	if activeOnly {
		query = `SELECT ` + productColumns + ` FROM products WHERE active = true ORDER BY name`
	}

	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// DecrementProductStock reduces stock by quantity with an optimistic guard:
// the update only matches when enough stock remains. Returns pgx.ErrNoRows
// when stock was insufficient or the product does not exist.
func (q *Queries) DecrementProductStock(ctx context.Context, id uuid.UUID, quantity int32) error {
	tag, err := q.db.Exec(ctx,
		`UPDATE products SET stock = stock - $2, updated_at = now()
		 WHERE id = $1 AND stock >= $2`, id, quantity)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// RestoreProductStock adds quantity back to stock, used when an order is cancelled.
func (q *Queries) RestoreProductStock(ctx context.Context, id uuid.UUID, quantity int32) error {
	tag, err := q.db.Exec(ctx,
		`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("failed to restore stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
