package storefront

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lorean-shop/lorean/internal/domain"
	"github.com/lorean-shop/lorean/internal/handler"
	"github.com/lorean-shop/lorean/internal/repository"
)

// ProductHandler serves the public catalog.
type ProductHandler struct {
	repo   repository.Querier
	logger zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(repo repository.Querier, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		repo:   repo,
		logger: logger,
	}
}

// RegisterRoutes mounts the catalog routes on the storefront group.
func (h *ProductHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/products", h.List)
	g.GET("/products/:slug", h.Get)
}

func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.repo.ListProducts(c.Request().Context(), true)
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, handler.NewProductViews(products))
}

func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.repo.GetProductBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if isNoRows(err) {
			return handler.RespondError(c, h.logger, domain.ErrProductNotFound)
		}
		return handler.RespondError(c, h.logger, err)
	}
	if !product.Active {
		return handler.RespondError(c, h.logger, domain.ErrProductNotFound)
	}
	return c.JSON(http.StatusOK, handler.NewProductView(product))
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}
