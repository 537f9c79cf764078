package storefront

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lorean-shop/lorean/internal/domain"
	"github.com/lorean-shop/lorean/internal/handler"
	"github.com/lorean-shop/lorean/internal/service"
	"github.com/lorean-shop/lorean/internal/telemetry"
)

// OrderHandler serves order tracking and return submission to shoppers.
type OrderHandler struct {
	orders  service.OrderService
	returns service.ReturnService
	metrics *telemetry.BusinessMetrics
	logger  zerolog.Logger
}

// NewOrderHandler creates a new storefront order handler.
func NewOrderHandler(orders service.OrderService, returns service.ReturnService, metrics *telemetry.BusinessMetrics, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		returns: returns,
		metrics: metrics,
		logger:  logger,
	}
}

// RegisterRoutes mounts the tracking routes on the storefront group.
func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders/:shortID", h.Track)
	g.POST("/orders/:shortID/returns", h.RequestReturn)
}

// Track looks an order up by its shareable reference. The response carries
// the derived paid flag so the storefront never re-derives payment state.
func (h *OrderHandler) Track(c echo.Context) error {
	order, err := h.orders.GetOrderByShortID(c.Request().Context(), c.Param("shortID"))
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, handler.NewOrderView(order))
}

type returnRequestBody struct {
	Reason  string  `json:"reason"`
	Details string  `json:"details"`
	Amount  float64 `json:"amount"`
}

func (h *OrderHandler) RequestReturn(c echo.Context) error {
	var body returnRequestBody
	if err := c.Bind(&body); err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("return.create", "malformed request body"))
	}

	ctx := c.Request().Context()
	order, err := h.orders.GetOrderByShortID(ctx, c.Param("shortID"))
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}

	request, err := h.returns.CreateReturn(ctx, service.CreateReturnParams{
		OrderID: order.ID,
		Reason:  body.Reason,
		Details: body.Details,
		Amount:  body.Amount,
	})
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}

	h.metrics.ReturnsCreated.Inc()
	return c.JSON(http.StatusCreated, handler.NewReturnView(request))
}
