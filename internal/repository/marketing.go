package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lorean-shop/lorean/internal/domain"
)

// GetMarketingConfig returns the singleton marketing configuration.
// When nothing has been saved yet, the documented defaults are returned.
func (q *Queries) GetMarketingConfig(ctx context.Context) (domain.MarketingConfig, error) {
	var heroBar, extensions []byte
	cfg := domain.DefaultMarketingConfig()

	row := q.db.QueryRow(ctx,
		`SELECT hero_bar, extensions, updated_at FROM marketing_config WHERE id = 1`)
	err := row.Scan(&heroBar, &extensions, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DefaultMarketingConfig(), nil
		}
		return domain.MarketingConfig{}, fmt.Errorf("failed to get marketing config: %w", err)
	}

	if len(heroBar) > 0 {
		if err := json.Unmarshal(heroBar, &cfg.HeroBar); err != nil {
			return domain.MarketingConfig{}, fmt.Errorf("failed to decode hero bar config: %w", err)
		}
	}
	if len(extensions) > 0 {
		if err := json.Unmarshal(extensions, &cfg.Extensions); err != nil {
			return domain.MarketingConfig{}, fmt.Errorf("failed to decode marketing extensions: %w", err)
		}
	}
	return cfg, nil
}

// UpsertMarketingConfig saves the singleton marketing configuration.
func (q *Queries) UpsertMarketingConfig(ctx context.Context, cfg domain.MarketingConfig) error {
	heroBar, err := json.Marshal(cfg.HeroBar)
	if err != nil {
		return fmt.Errorf("failed to encode hero bar config: %w", err)
	}
	extensions := []byte("{}")
	if cfg.Extensions != nil {
		extensions, err = json.Marshal(cfg.Extensions)
		if err != nil {
			return fmt.Errorf("failed to encode marketing extensions: %w", err)
		}
	}

	_, err = q.db.Exec(ctx,
		`INSERT INTO marketing_config (id, hero_bar, extensions, updated_at)
		 VALUES (1, $1, $2, now())
		 ON CONFLICT (id) DO UPDATE SET hero_bar = $1, extensions = $2, updated_at = now()`,
		heroBar, extensions)
	if err != nil {
		return fmt.Errorf("failed to save marketing config: %w", err)
	}
	return nil
}
