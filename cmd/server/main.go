package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/echo/v4"
	"github.com/nats-io/nats.go"

	"github.com/lorean-shop/lorean/internal"
	"github.com/lorean-shop/lorean/internal/billing"
	"github.com/lorean-shop/lorean/internal/cart"
	"github.com/lorean-shop/lorean/internal/handler/admin"
	"github.com/lorean-shop/lorean/internal/handler/storefront"
	"github.com/lorean-shop/lorean/internal/middleware"
	"github.com/lorean-shop/lorean/internal/realtime"
	"github.com/lorean-shop/lorean/internal/repository"
	"github.com/lorean-shop/lorean/internal/routes"
	"github.com/lorean-shop/lorean/internal/service"
	"github.com/lorean-shop/lorean/internal/tax"
	"github.com/lorean-shop/lorean/internal/telemetry"
)

func run() error {
	ctx := context.Background()

	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	logger.Info().Msg("connecting to database")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info().Msg("running database migrations")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	repo := repository.New(pool)

	// Change feed. Without a NATS URL the feed is disabled and admin
	// clients fall back to polling.
	var publisher realtime.Publisher = realtime.NopPublisher{}
	if cfg.NATS.URL != "" {
		conn, err := nats.Connect(cfg.NATS.URL,
			nats.MaxReconnects(-1),
			nats.ReconnectWait(2*time.Second))
		if err != nil {
			return fmt.Errorf("failed to connect to nats: %w", err)
		}
		defer conn.Drain()
		publisher = realtime.NewNATSPublisher(conn, logger)
		logger.Info().Str("url", cfg.NATS.URL).Msg("change feed connected")
	}

	// Session store. Redis in deployment, in-process memory for dev.
	var sessionStore cart.Store = cart.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping failed: %w", err)
		}
		defer client.Close()
		sessionStore = cart.NewRedisStore(client)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("session store connected")
	}

	var provider billing.Provider = &billing.MockProvider{}
	if cfg.Stripe.SecretKey != "" {
		provider, err = billing.NewStripeProvider(cfg.Stripe.SecretKey)
		if err != nil {
			return fmt.Errorf("failed to initialize stripe provider: %w", err)
		}
		logger.Info().Msg("stripe billing provider initialized")
	} else {
		logger.Warn().Msg("no stripe key configured, using mock billing provider")
	}

	calculator := tax.NewRuleCalculator(repo, cfg.Tax.MergePolicy)

	orderService := service.NewOrderService(repo, publisher, logger)
	checkoutService := service.NewCheckoutService(repo, calculator, provider, publisher, logger)
	returnService := service.NewReturnService(repo, provider, logger)

	validate := validator.New()
	httpMetrics := middleware.NewMetrics("lorean")
	businessMetrics := telemetry.NewBusinessMetrics("lorean")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	routes.Register(e, logger, httpMetrics,
		routes.StorefrontDeps{
			ProductHandler:  storefront.NewProductHandler(repo, logger),
			CartHandler:     storefront.NewCartHandler(repo, sessionStore, logger),
			CheckoutHandler: storefront.NewCheckoutHandler(checkoutService, sessionStore, validate, businessMetrics, logger),
			OrderHandler:    storefront.NewOrderHandler(orderService, returnService, businessMetrics, logger),
		},
		routes.AdminDeps{
			TaxRuleHandler:      admin.NewTaxRuleHandler(repo, validate, logger),
			OrderHandler:        admin.NewOrderHandler(orderService, businessMetrics, logger),
			ReturnHandler:       admin.NewReturnHandler(returnService, businessMetrics, logger),
			ReportHandler:       admin.NewReportHandler(repo, logger),
			MarketingHandler:    admin.NewMarketingHandler(repo, logger),
			NotificationHandler: admin.NewNotificationHandler(repo, logger),
		})

	addr := fmt.Sprintf(":%d", cfg.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
