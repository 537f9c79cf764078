package admin

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lorean-shop/lorean/internal/domain"
	"github.com/lorean-shop/lorean/internal/handler"
	"github.com/lorean-shop/lorean/internal/service"
	"github.com/lorean-shop/lorean/internal/telemetry"
)

// OrderHandler exposes the order lifecycle to the back office.
type OrderHandler struct {
	orders  service.OrderService
	metrics *telemetry.BusinessMetrics
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders service.OrderService, metrics *telemetry.BusinessMetrics, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		metrics: metrics,
		logger:  logger,
	}
}

// RegisterRoutes mounts the order routes on the admin group.
func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders", h.List)
	g.GET("/orders/:id", h.Get)
	g.PATCH("/orders/:id/status", h.UpdateStatus)
	g.POST("/orders/bulk-status", h.BulkUpdateStatus)
	g.DELETE("/orders/:id", h.Delete)
}

func (h *OrderHandler) List(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 32)
	offset, _ := strconv.ParseInt(c.QueryParam("offset"), 10, 32)

	orders, err := h.orders.ListOrders(c.Request().Context(), c.QueryParam("status"), int32(limit), int32(offset))
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, handler.NewOrderViews(orders))
}

func (h *OrderHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("order.get", "invalid order id"))
	}

	order, err := h.orders.GetOrder(c.Request().Context(), id)
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, handler.NewOrderView(order))
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("order.update_status", "invalid order id"))
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("order.update_status", "malformed request body"))
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}

	h.metrics.OrderStatusChanges.WithLabelValues(order.Status).Inc()
	return c.JSON(http.StatusOK, handler.NewOrderView(order))
}

type bulkStatusRequest struct {
	OrderIDs []string `json:"order_ids"`
	Status   string   `json:"status"`
}

// bulkStatusResponse reports the partial outcome. failed > 0 with updated
// > 0 is a legal state; succeeded rows stay committed.
type bulkStatusResponse struct {
	Updated int               `json:"updated"`
	Failed  int               `json:"failed"`
	Errors  []bulkErrorDetail `json:"errors,omitempty"`
}

type bulkErrorDetail struct {
	OrderID string `json:"order_id"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *OrderHandler) BulkUpdateStatus(c echo.Context) error {
	var req bulkStatusRequest
	if err := c.Bind(&req); err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("order.bulk_status", "malformed request body"))
	}
	if len(req.OrderIDs) == 0 {
		return handler.RespondError(c, h.logger, domain.Invalid("order.bulk_status", "order_ids is required"))
	}

	ids := make([]uuid.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return handler.RespondError(c, h.logger, domain.Invalid("order.bulk_status", "invalid order id "+raw))
		}
		ids = append(ids, id)
	}

	result := h.orders.BulkUpdateStatus(c.Request().Context(), ids, req.Status)

	resp := bulkStatusResponse{Updated: result.Updated, Failed: result.Failed}
	for _, e := range result.Errors {
		resp.Errors = append(resp.Errors, bulkErrorDetail{
			OrderID: e.OrderID.String(),
			Code:    domain.ErrorCode(e.Err),
			Message: domain.ErrorMessage(e.Err),
		})
	}

	if result.Updated > 0 {
		h.metrics.OrderStatusChanges.WithLabelValues(req.Status).Add(float64(result.Updated))
	}

	status := http.StatusOK
	if result.Failed > 0 {
		status = http.StatusMultiStatus
	}
	return c.JSON(status, resp)
}

func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("order.delete", "invalid order id"))
	}

	if err := h.orders.DeleteOrder(c.Request().Context(), id); err != nil {
		return handler.RespondError(c, h.logger, err)
	}

	h.metrics.OrdersDeleted.Inc()
	return c.NoContent(http.StatusNoContent)
}
