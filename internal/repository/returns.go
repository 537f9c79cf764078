package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lorean-shop/lorean/internal/domain"
)

const returnColumns = `id, order_id, reason, details, amount, status, created_at, updated_at`

// CreateReturnRequestParams holds the fields for a new return request.
type CreateReturnRequestParams struct {
	OrderID uuid.UUID
	Reason  string
	Details string
	Amount  float64
}

func scanReturn(row pgx.Row) (domain.ReturnRequest, error) {
	var r domain.ReturnRequest
	err := row.Scan(&r.ID, &r.OrderID, &r.Reason, &r.Details, &r.Amount,
		&r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return domain.ReturnRequest{}, err
	}
	return r, nil
}

// CreateReturnRequest inserts a new pending return request.
func (q *Queries) CreateReturnRequest(ctx context.Context, arg CreateReturnRequestParams) (domain.ReturnRequest, error) {
	row := q.db.QueryRow(ctx,
		`INSERT INTO return_requests (order_id, reason, details, amount, status)
		 VALUES ($1, $2, $3, $4, 'pending')
		 RETURNING `+returnColumns,
		arg.OrderID, arg.Reason, arg.Details, arg.Amount)
	return scanReturn(row)
}

// GetReturnRequest returns a single return request by id.
func (q *Queries) GetReturnRequest(ctx context.Context, id uuid.UUID) (domain.ReturnRequest, error) {
	row := q.db.QueryRow(ctx, `SELECT `+returnColumns+` FROM return_requests WHERE id = $1`, id)
	return scanReturn(row)
}

// ListReturnRequests returns return requests newest first, optionally
// filtered by status.
func (q *Queries) ListReturnRequests(ctx context.Context, status string) ([]domain.ReturnRequest, error) {
	var rows pgx.Rows
	var err error
	if status != "" {
		rows, err = q.db.Query(ctx,
			`SELECT `+returnColumns+` FROM return_requests WHERE status = $1 ORDER BY created_at DESC`, status)
	} else {
		rows, err = q.db.Query(ctx,
			`SELECT `+returnColumns+` FROM return_requests ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list return requests: %w", err)
	}
	defer rows.Close()

	var returns []domain.ReturnRequest
	for rows.Next() {
		r, err := scanReturn(rows)
		if err != nil {
			return nil, err
		}
		returns = append(returns, r)
	}
	return returns, rows.Err()
}

// UpdateReturnStatus sets a return request's status. Returns pgx.ErrNoRows
// when the id matches nothing.
func (q *Queries) UpdateReturnStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := q.db.Exec(ctx,
		`UPDATE return_requests SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update return status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
