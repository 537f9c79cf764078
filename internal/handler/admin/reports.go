package admin

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lorean-shop/lorean/internal/domain"
	"github.com/lorean-shop/lorean/internal/handler"
	"github.com/lorean-shop/lorean/internal/repository"
	"github.com/lorean-shop/lorean/internal/tax"
)

// ReportHandler serves the tax collection report.
type ReportHandler struct {
	repo   repository.Querier
	logger zerolog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(repo repository.Querier, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		repo:   repo,
		logger: logger,
	}
}

// RegisterRoutes mounts the report routes on the admin group.
func (h *ReportHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/reports/tax", h.TaxSummary)
}

// taxSummaryResponse is the JSON shape of a tax report.
type taxSummaryResponse struct {
	TotalTaxCollected float64            `json:"total_tax_collected"`
	OrderCount        int                `json:"order_count"`
	AverageTax        float64            `json:"average_tax"`
	ByTaxType         map[string]float64 `json:"by_tax_type"`
}

// TaxSummary aggregates frozen tax amounts over an inclusive date window.
// Query parameters from and to are RFC 3339 dates or timestamps; either may
// be omitted to leave that side open.
func (h *ReportHandler) TaxSummary(c echo.Context) error {
	from, err := parseWindowBound(c.QueryParam("from"), false)
	if err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("report.tax", "invalid from date"))
	}
	to, err := parseWindowBound(c.QueryParam("to"), true)
	if err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("report.tax", "invalid to date"))
	}

	orders, err := h.repo.ListOrdersCreatedBetween(c.Request().Context(), from, to)
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}

	summary := tax.Summarize(orders, from, to)
	return c.JSON(http.StatusOK, taxSummaryResponse{
		TotalTaxCollected: summary.TotalTaxCollected,
		OrderCount:        summary.OrderCount,
		AverageTax:        summary.AverageTax,
		ByTaxType:         summary.ByTaxType,
	})
}

// parseWindowBound accepts a date or a full timestamp. A bare date as the
// upper bound means end of that day, keeping the window inclusive.
func parseWindowBound(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
