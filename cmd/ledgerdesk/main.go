package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ledgerdesk/ledgerdesk/internal/analytics"
	analytichttp "github.com/ledgerdesk/ledgerdesk/internal/analytics/http"
	"github.com/ledgerdesk/ledgerdesk/internal/app"
	"github.com/ledgerdesk/ledgerdesk/internal/invoices"
	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/customers"
	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/gst"
	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/gstcodes"
	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/products"
	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/serviceitems"
	"github.com/ledgerdesk/ledgerdesk/internal/orders"
	"github.com/ledgerdesk/ledgerdesk/internal/platform/db"
	"github.com/ledgerdesk/ledgerdesk/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	customerHandler := customers.NewHandler(logger, customers.NewService(customers.NewRepository(pool)))
	productHandler := products.NewHandler(logger, products.NewService(products.NewRepository(pool)))
	serviceItemHandler := serviceitems.NewHandler(logger, serviceitems.NewService(serviceitems.NewRepository(pool)))
	gstHandler := gst.NewHandler(logger, gst.NewService(gst.NewRepository(pool)))
	gstCodeHandler := gstcodes.NewHandler(logger, gstcodes.NewService(gstcodes.NewRepository(pool)))
	orderHandler := orders.NewHandler(logger, orders.NewService(orders.NewRepository(pool)))
	invoiceHandler := invoices.NewHandler(logger, invoices.NewService(invoices.NewRepository(pool)))

	analyticsCache := analytics.NewCache(redisClient, cfg.AnalyticsCacheTTL)
	// Track version bumps published by the worker so cached analytics keys
	// roll over without waiting for the TTL.
	if err := analyticsCache.ListenForInvalidation(ctx, ""); err != nil {
		logger.Warn("analytics invalidation listener", slog.Any("error", err))
	}
	analyticsService := analytics.NewService(analytics.NewRepository(pool), analyticsCache)
	analyticsHandler := analytichttp.NewHandler(logger, analyticsService)

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()
	if _, err := jobsClient.EnqueueAnalyticsWarmup(ctx, jobs.AnalyticsWarmupPayload{}); err != nil {
		logger.Warn("enqueue analytics warmup", slog.Any("error", err))
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		CustomerHandler:    customerHandler,
		ProductHandler:     productHandler,
		ServiceItemHandler: serviceItemHandler,
		GSTHandler:         gstHandler,
		GSTCodeHandler:     gstCodeHandler,
		OrderHandler:       orderHandler,
		InvoiceHandler:     invoiceHandler,
		AnalyticsHandler:   analyticsHandler,
		JobHandler:         jobHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
