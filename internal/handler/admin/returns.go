package admin

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lorean-shop/lorean/internal/domain"
	"github.com/lorean-shop/lorean/internal/handler"
	"github.com/lorean-shop/lorean/internal/service"
	"github.com/lorean-shop/lorean/internal/telemetry"
)

// ReturnHandler exposes return request review to the back office.
type ReturnHandler struct {
	returns service.ReturnService
	metrics *telemetry.BusinessMetrics
	logger  zerolog.Logger
}

// NewReturnHandler creates a new return handler.
func NewReturnHandler(returns service.ReturnService, metrics *telemetry.BusinessMetrics, logger zerolog.Logger) *ReturnHandler {
	return &ReturnHandler{
		returns: returns,
		metrics: metrics,
		logger:  logger,
	}
}

// RegisterRoutes mounts the return routes on the admin group.
func (h *ReturnHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/returns", h.List)
	g.POST("/returns/:id/approve", h.Approve)
	g.POST("/returns/:id/reject", h.Reject)
	g.POST("/returns/:id/refund", h.Refund)
}

func (h *ReturnHandler) List(c echo.Context) error {
	requests, err := h.returns.ListReturns(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, handler.NewReturnViews(requests))
}

func (h *ReturnHandler) Approve(c echo.Context) error {
	return h.resolve(c, h.returns.ApproveReturn)
}

func (h *ReturnHandler) Reject(c echo.Context) error {
	return h.resolve(c, h.returns.RejectReturn)
}

func (h *ReturnHandler) Refund(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("return.refund", "invalid return id"))
	}

	request, err := h.returns.RefundReturn(c.Request().Context(), id)
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}

	h.metrics.ReturnsResolved.WithLabelValues(request.Status).Inc()
	h.metrics.RefundAmount.Add(request.Amount)
	return c.JSON(http.StatusOK, handler.NewReturnView(request))
}

func (h *ReturnHandler) resolve(c echo.Context, apply func(ctx context.Context, id uuid.UUID) (domain.ReturnRequest, error)) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("return.resolve", "invalid return id"))
	}

	request, err := apply(c.Request().Context(), id)
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}

	h.metrics.ReturnsResolved.WithLabelValues(request.Status).Inc()
	return c.JSON(http.StatusOK, handler.NewReturnView(request))
}
