package storefront

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lorean-shop/lorean/internal/cart"
	"github.com/lorean-shop/lorean/internal/domain"
	"github.com/lorean-shop/lorean/internal/handler"
	"github.com/lorean-shop/lorean/internal/service"
	"github.com/lorean-shop/lorean/internal/telemetry"
)

// CheckoutHandler turns the session cart into an order.
type CheckoutHandler struct {
	checkout service.CheckoutService
	store    cart.Store
	validate *validator.Validate
	metrics  *telemetry.BusinessMetrics
	logger   zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(
	checkout service.CheckoutService,
	store cart.Store,
	validate *validator.Validate,
	metrics *telemetry.BusinessMetrics,
	logger zerolog.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		store:    store,
		validate: validate,
		metrics:  metrics,
		logger:   logger,
	}
}

// RegisterRoutes mounts the checkout route on the storefront group.
func (h *CheckoutHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/checkout", h.Checkout)
}

type checkoutRequest struct {
	Country        string  `json:"country" validate:"required"`
	PaymentMethod  string  `json:"payment_method" validate:"required"`
	CustomerEmail  string  `json:"customer_email" validate:"required,email"`
	DiscountAmount float64 `json:"discount_amount" validate:"gte=0"`
}

type checkoutResponse struct {
	Order               handler.OrderView `json:"order"`
	PaymentClientSecret string            `json:"payment_client_secret,omitempty"`
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("checkout", "malformed request body"))
	}
	if err := h.validate.Struct(&req); err != nil {
		return handler.RespondError(c, h.logger, domain.Invalid("checkout", "country, payment method and a valid email are required"))
	}

	ctx := c.Request().Context()
	session := sessionID(c)
	current, err := h.store.LoadCart(ctx, session)
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}

	result, err := h.checkout.Checkout(ctx, service.CheckoutParams{
		Cart:           current,
		Country:        req.Country,
		PaymentMethod:  req.PaymentMethod,
		CustomerEmail:  req.CustomerEmail,
		DiscountAmount: req.DiscountAmount,
	})
	if err != nil {
		return handler.RespondError(c, h.logger, err)
	}

	// The cart is cleared only after the order exists.
	if err := h.store.SaveCart(ctx, session, &cart.Cart{}); err != nil {
		h.logger.Error().Err(err).Str("session", session).Msg("failed to clear cart after checkout")
	}

	h.metrics.OrdersCreated.WithLabelValues(result.Order.PaymentMethod).Inc()
	h.metrics.OrderValue.Observe(result.Order.TotalAmount)
	for _, line := range result.Order.TaxBreakdown {
		h.metrics.TaxCollected.WithLabelValues(line.Name).Add(line.Amount)
	}

	return c.JSON(http.StatusCreated, checkoutResponse{
		Order:               handler.NewOrderView(result.Order),
		PaymentClientSecret: result.PaymentClientSecret,
	})
}
