// Package admin holds the back-office JSON handlers.
package admin

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lorean-shop/lorean/internal/domain"
	"github.com/lorean-shop/lorean/internal/handler"
	"github.com/lorean-shop/lorean/internal/repository"
)

// TaxRuleHandler manages tax rule CRUD for the back office.
type TaxRuleHandler struct {
	repo     repository.Querier
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewTaxRuleHandler creates a new tax rule handler.
func NewTaxRuleHandler(repo repository.Querier, validate *validator.Validate, logger zerolog.Logger) *TaxRuleHandler {
	return &TaxRuleHandler{
		repo:     repo,
		validate: validate,
		logger:   logger,
	}
}

// RegisterRoutes mounts the tax rule routes on the admin group.
func (h *TaxRuleHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/tax-rules", h.List)
	g.POST("/tax-rules", h.Create)
	g.GET("/tax-rules/:id", h.Get)
	g.PUT("/tax-rules/:id", h.Update)
	g.DELETE("/tax-rules/:id", h.Delete)
}

// taxRuleRequest is the create/update payload. A zero override value is
// legal and means "skip this rule for that product".
type taxRuleRequest struct {
	Name             string             `json:"name" validate:"required"`
	Type             string             `json:"type" validate:"required,oneof=percentage fixed"`
	Rate             float64            `json:"rate" validate:"required,gt=0"`
	Country          string             `json:"country" validate:"required"`
	Region           string             `json:"region"`
	Active           *bool              `json:"active"`
	Priority         int32              `json:"priority"`
	ProductOverrides map[string]float64 `json:"product_overrides"`
}

func (r *taxRuleRequest) active() bool {
	if r.Active == nil {
		return true
	}
	return *r.Active
}

func (h *TaxRuleHandler) List(c echo.Context) error {
	rules, err := h.repo.ListTaxRules(c.Request().Context())
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, handler.NewTaxRuleViews(rules))
}

func (h *TaxRuleHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("tax_rule.get", "invalid tax rule id"))
	}

	rule, err := h.repo.GetTaxRule(c.Request().Context(), id)
	if err != nil {
		if isNoRows(err) {
			return handler.RespondError(c, h.logger, domain.ErrTaxRuleNotFound)
		}
		return handler.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, handler.NewTaxRuleView(rule))
}

func (h *TaxRuleHandler) Create(c echo.Context) error {
	var req taxRuleRequest
	if err := c.Bind(&req); err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("tax_rule.create", "malformed request body"))
	}
	if err := h.validate.Struct(&req); err != nil {
		return handler.RespondError(c, h.logger, invalidTaxRule(req, err))
	}

	rule, err := h.repo.CreateTaxRule(c.Request().Context(), repository.CreateTaxRuleParams{
		Name:             req.Name,
		Type:             req.Type,
		Rate:             req.Rate,
		Country:          req.Country,
		Region:           req.Region,
		Active:           req.active(),
		Priority:         req.Priority,
		ProductOverrides: req.ProductOverrides,
	})
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, handler.NewTaxRuleView(rule))
}

func (h *TaxRuleHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("tax_rule.update", "invalid tax rule id"))
	}

	var req taxRuleRequest
	if err := c.Bind(&req); err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("tax_rule.update", "malformed request body"))
	}
	if err := h.validate.Struct(&req); err != nil {
		return handler.RespondError(c, h.logger, invalidTaxRule(req, err))
	}

	rule, err := h.repo.UpdateTaxRule(c.Request().Context(), repository.UpdateTaxRuleParams{
		ID:               id,
		Name:             req.Name,
		Type:             req.Type,
		Rate:             req.Rate,
		Country:          req.Country,
		Region:           req.Region,
		Active:           req.active(),
		Priority:         req.Priority,
		ProductOverrides: req.ProductOverrides,
	})
	if err != nil {
		if isNoRows(err) {
			return handler.RespondError(c, h.logger, domain.ErrTaxRuleNotFound)
		}
		return handler.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, handler.NewTaxRuleView(rule))
}

func (h *TaxRuleHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("tax_rule.delete", "invalid tax rule id"))
	}

	if err := h.repo.DeleteTaxRule(c.Request().Context(), id); err != nil {
		if isNoRows(err) {
			return handler.RespondError(c, h.logger, domain.ErrTaxRuleNotFound)
		}
		return handler.RespondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// invalidTaxRule turns validator failures into the domain error a client
// can act on. A non-positive rate is the one the storefront team hits most,
// so it gets a dedicated message.
func invalidTaxRule(req taxRuleRequest, _ error) error {
	if req.Rate <= 0 {
		return domain.ErrInvalidTaxRate
	}
	if !domain.ValidTaxType(req.Type) {
		return domain.ErrInvalidTaxType
	}
	return domain.Invalid("tax_rule.validate", "name and country are required")
}
