package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lorean-shop/lorean/internal/domain"
)

const taxRuleColumns = `id, name, type, rate, country, region, active, priority, product_overrides, created_at, updated_at`

// CreateTaxRuleParams holds the fields for a new tax rule.
type CreateTaxRuleParams struct {
	Name             string
	Type             string
	Rate             float64
	Country          string
	Region           string
	Active           bool
	Priority         int32
	ProductOverrides map[string]float64
}

// UpdateTaxRuleParams holds the full replacement state for a tax rule.
type UpdateTaxRuleParams struct {
	ID               uuid.UUID
	Name             string
	Type             string
	Rate             float64
	Country          string
	Region           string
	Active           bool
	Priority         int32
	ProductOverrides map[string]float64
}

func scanTaxRule(row pgx.Row) (domain.TaxRule, error) {
	var r domain.TaxRule
	var overrides []byte
	err := row.Scan(&r.ID, &r.Name, &r.Type, &r.Rate, &r.Country, &r.Region,
		&r.Active, &r.Priority, &overrides, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return domain.TaxRule{}, err
	}
	if len(overrides) > 0 {
		if err := json.Unmarshal(overrides, &r.ProductOverrides); err != nil {
			return domain.TaxRule{}, fmt.Errorf("failed to decode product overrides: %w", err)
		}
	}
	return r, nil
}

func (q *Queries) collectTaxRules(rows pgx.Rows) ([]domain.TaxRule, error) {
	defer rows.Close()

	var rules []domain.TaxRule
	for rows.Next() {
		r, err := scanTaxRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// ListTaxRules returns every tax rule ordered by country then priority.
func (q *Queries) ListTaxRules(ctx context.Context) ([]domain.TaxRule, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+taxRuleColumns+` FROM tax_rules ORDER BY country, priority, created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax rules: %w", err)
	}
	return q.collectTaxRules(rows)
}

// ListActiveTaxRulesByCountry returns active rules whose country column
// equals the given country, ordered ascending by priority. GLOBAL rules are
// returned only when country is the GLOBAL sentinel; merging GLOBAL with
// country-specific rules is the calculator's merge policy, not the store's.
func (q *Queries) ListActiveTaxRulesByCountry(ctx context.Context, country string) ([]domain.TaxRule, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+taxRuleColumns+` FROM tax_rules
		 WHERE active = true AND country = $1
		 ORDER BY priority, created_at`, country)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax rules for country %s: %w", country, err)
	}
	return q.collectTaxRules(rows)
}

// GetTaxRule returns a single tax rule by id.
func (q *Queries) GetTaxRule(ctx context.Context, id uuid.UUID) (domain.TaxRule, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+taxRuleColumns+` FROM tax_rules WHERE id = $1`, id)
	return scanTaxRule(row)
}

// CreateTaxRule inserts a new tax rule and returns the stored row.
func (q *Queries) CreateTaxRule(ctx context.Context, arg CreateTaxRuleParams) (domain.TaxRule, error) {
	overrides, err := marshalOverrides(arg.ProductOverrides)
	if err != nil {
		return domain.TaxRule{}, err
	}

	row := q.db.QueryRow(ctx,
		`INSERT INTO tax_rules (name, type, rate, country, region, active, priority, product_overrides)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+taxRuleColumns,
		arg.Name, arg.Type, arg.Rate, arg.Country, arg.Region, arg.Active, arg.Priority, overrides)
	return scanTaxRule(row)
}

// UpdateTaxRule replaces a tax rule's fields. Returns pgx.ErrNoRows when the
// id matches nothing.
func (q *Queries) UpdateTaxRule(ctx context.Context, arg UpdateTaxRuleParams) (domain.TaxRule, error) {
	overrides, err := marshalOverrides(arg.ProductOverrides)
	if err != nil {
		return domain.TaxRule{}, err
	}

	row := q.db.QueryRow(ctx,
		`UPDATE tax_rules
		 SET name = $2, type = $3, rate = $4, country = $5, region = $6,
		     active = $7, priority = $8, product_overrides = $9, updated_at = now()
		 WHERE id = $1
		 RETURNING `+taxRuleColumns,
		arg.ID, arg.Name, arg.Type, arg.Rate, arg.Country, arg.Region,
		arg.Active, arg.Priority, overrides)
	return scanTaxRule(row)
}

// DeleteTaxRule removes a tax rule. Returns pgx.ErrNoRows when nothing matched.
func (q *Queries) DeleteTaxRule(ctx context.Context, id uuid.UUID) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM tax_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tax rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func marshalOverrides(overrides map[string]float64) ([]byte, error) {
	if overrides == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product overrides: %w", err)
	}
	return b, nil
}
