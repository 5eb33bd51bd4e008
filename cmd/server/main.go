package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vitrinelabs/vitrine/internal"
	"github.com/vitrinelabs/vitrine/internal/cart"
	"github.com/vitrinelabs/vitrine/internal/catalog"
	"github.com/vitrinelabs/vitrine/internal/domain"
	"github.com/vitrinelabs/vitrine/internal/handler/storefront"
	"github.com/vitrinelabs/vitrine/internal/postgres"
	"github.com/vitrinelabs/vitrine/internal/router"
	"github.com/vitrinelabs/vitrine/internal/telemetry"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize Sentry error tracking
	sentryCleanup, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Enabled:          cfg.Sentry.Enabled,
		Environment:      cfg.Sentry.Environment,
		Release:          cfg.Sentry.Release,
		SampleRate:       cfg.Sentry.SampleRate,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
		Debug:            cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer sentryCleanup()

	// Load the product catalog
	logger.Info("Loading catalog...", "path", cfg.CatalogPath)
	store, err := catalog.LoadStore(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("catalog load failed: %w", err)
	}
	logger.Info("Catalog loaded", "products", store.Len())

	// Cart persistence is optional: without DATABASE_URL carts live in
	// memory for the lifetime of the process.
	var cartRepo domain.CartRepository
	if cfg.DatabaseUrl != "" {
		logger.Info("Connecting to database...")
		sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer sqlDB.Close()

		if err := sqlDB.Ping(); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}
		logger.Info("Database connection established")

		logger.Info("Running database migrations...")
		if err := internal.RunMigrations(sqlDB); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("Database migrations completed successfully")

		pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
		if err != nil {
			return fmt.Errorf("failed to create connection pool: %w", err)
		}
		defer pool.Close()

		cartRepo = postgres.NewCartStore(pool)
	} else {
		logger.Info("DATABASE_URL not set, carts are in-memory only")
	}

	// Metrics and services
	metrics := telemetry.NewMetrics(cfg.MetricsNamespace)
	carts := cart.NewManager(cartRepo, logger)

	secureCookies := cfg.Env == "prod"
	productsHandler := storefront.NewProductsHandler(store, metrics, logger)
	cartHandler := storefront.NewCartHandler(carts, store, metrics, logger, secureCookies)

	// Routes
	r := router.New(router.RequestID, router.Logger(logger), router.Recovery(logger))

	r.Get("/api/products", productsHandler.List)
	r.Get("/api/products/suggestions", productsHandler.Suggestions)
	r.Get("/api/products/{id}", productsHandler.Detail)
	r.Get("/api/filters", productsHandler.Filters)

	r.Get("/api/cart", cartHandler.View)
	r.Post("/api/cart/items", cartHandler.Add)
	r.Put("/api/cart/items", cartHandler.Update)
	r.Delete("/api/cart/items", cartHandler.Remove)
	r.Delete("/api/cart", cartHandler.Clear)
	r.Post("/api/checkout", cartHandler.Checkout)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle(http.MethodGet, "/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
