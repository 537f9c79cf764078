package admin

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lorean-shop/lorean/internal/domain"
	"github.com/lorean-shop/lorean/internal/handler"
	"github.com/lorean-shop/lorean/internal/repository"
)

// MarketingHandler manages the storefront marketing configuration.
type MarketingHandler struct {
	repo   repository.Querier
	logger zerolog.Logger
}

// NewMarketingHandler creates a new marketing handler.
func NewMarketingHandler(repo repository.Querier, logger zerolog.Logger) *MarketingHandler {
	return &MarketingHandler{
		repo:   repo,
		logger: logger,
	}
}

// RegisterRoutes mounts the marketing routes on the admin group.
func (h *MarketingHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/marketing", h.Get)
	g.PUT("/marketing", h.Put)
}

type marketingConfigBody struct {
	HeroBar    domain.HeroBarConfig `json:"hero_bar"`
	Extensions map[string]string    `json:"extensions,omitempty"`
	UpdatedAt  time.Time            `json:"updated_at,omitempty"`
}

func (h *MarketingHandler) Get(c echo.Context) error {
	cfg, err := h.repo.GetMarketingConfig(c.Request().Context())
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, marketingConfigBody{
		HeroBar:    cfg.HeroBar,
		Extensions: cfg.Extensions,
		UpdatedAt:  cfg.UpdatedAt,
	})
}

func (h *MarketingHandler) Put(c echo.Context) error {
	var body marketingConfigBody
	if err := c.Bind(&body); err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("marketing.put", "malformed request body"))
	}

	cfg := domain.MarketingConfig{
		HeroBar:    body.HeroBar,
		Extensions: body.Extensions,
	}
	if err := h.repo.UpsertMarketingConfig(c.Request().Context(), cfg); err != nil {
		return handler.RespondError(c, h.logger, err)
	}

	saved, err := h.repo.GetMarketingConfig(c.Request().Context())
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, marketingConfigBody{
		HeroBar:    saved.HeroBar,
		Extensions: saved.Extensions,
		UpdatedAt:  saved.UpdatedAt,
	})
}
