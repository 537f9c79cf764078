// Package routes wires handlers onto the echo instance.
package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lorean-shop/lorean/internal/handler/admin"
	"github.com/lorean-shop/lorean/internal/handler/storefront"
	"github.com/lorean-shop/lorean/internal/middleware"
)

// StorefrontDeps contains the shopper-facing handlers.
type StorefrontDeps struct {
	ProductHandler  *storefront.ProductHandler
	CartHandler     *storefront.CartHandler
	CheckoutHandler *storefront.CheckoutHandler
	OrderHandler    *storefront.OrderHandler
}

// AdminDeps contains the back-office handlers.
type AdminDeps struct {
	TaxRuleHandler      *admin.TaxRuleHandler
	OrderHandler        *admin.OrderHandler
	ReturnHandler       *admin.ReturnHandler
	ReportHandler       *admin.ReportHandler
	MarketingHandler    *admin.MarketingHandler
	NotificationHandler *admin.NotificationHandler
}

// Register mounts all routes plus the operational endpoints.
func Register(e *echo.Echo, logger zerolog.Logger, metrics *middleware.Metrics, sf StorefrontDeps, ad AdminDeps) {
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(metrics.Middleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	shop := e.Group("/api/v1")
	sf.ProductHandler.RegisterRoutes(shop)
	sf.CartHandler.RegisterRoutes(shop)
	sf.CheckoutHandler.RegisterRoutes(shop)
	sf.OrderHandler.RegisterRoutes(shop)

	// Operator authentication fronts this group in the deployment proxy.
	back := e.Group("/api/v1/admin")
	ad.TaxRuleHandler.RegisterRoutes(back)
	ad.OrderHandler.RegisterRoutes(back)
	ad.ReturnHandler.RegisterRoutes(back)
	ad.ReportHandler.RegisterRoutes(back)
	ad.MarketingHandler.RegisterRoutes(back)
	ad.NotificationHandler.RegisterRoutes(back)
}
