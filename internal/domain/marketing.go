package domain

import "time"

// MarketingConfig is the storefront marketing configuration. The hero bar
// used to be a free-form map in earlier iterations; the known shape is now
// explicit, with Extensions as the escape hatch for unmodeled keys.
type MarketingConfig struct {
	HeroBar HeroBarConfig

	Extensions map[string]string

	UpdatedAt time.Time
}

// HeroBarConfig is the announcement bar shown across the storefront.
type HeroBarConfig struct {
	Enabled bool   `json:"enabled"`
	Text    string `json:"text"`
	LinkURL string `json:"link_url,omitempty"`

	// Background and Foreground are CSS color values. Empty means the
	// storefront default.
	Background string `json:"background,omitempty"`
	Foreground string `json:"foreground,omitempty"`
}

// DefaultMarketingConfig returns the configuration used before an
// administrator has saved one: hero bar disabled, no extensions.
func DefaultMarketingConfig() MarketingConfig {
	return MarketingConfig{
		HeroBar: HeroBarConfig{Enabled: false},
	}
}
