package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nkhandel/dietplanner-backend/internal/alerts"
	"github.com/nkhandel/dietplanner-backend/internal/mailer"
	"github.com/nkhandel/dietplanner-backend/internal/products"
	"github.com/nkhandel/dietplanner-backend/internal/users"
	"github.com/nkhandel/dietplanner-backend/pkg/config"
	"github.com/nkhandel/dietplanner-backend/pkg/db"
	"github.com/nkhandel/dietplanner-backend/pkg/logger"
	"github.com/nkhandel/dietplanner-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	registry := prometheus.NewRegistry()
	mail, err := mailer.New(cfg.SMTP, cfg.Mailer, logg, metrics.NewMailerMetrics(registry))
	if err != nil {
		logg.Error(ctx, "failed to create mailer", err)
		os.Exit(1)
	}
	mail.Start(ctx)
	defer mail.Close()

	conn := dbClient.DB()
	alertService, err := alerts.NewService(alerts.NewRepository(conn), products.NewRepository(conn), users.NewRepository(conn), mail, logg, cfg.Alerts)
	if err != nil {
		logg.Error(ctx, "failed to create alert service", err)
		os.Exit(1)
	}

	svc, err := NewService(ServiceParams{
		Config: cfg,
		Logger: logg,
		DB:     dbClient,
		Alerts: alertService,
		Jobs:   metrics.NewJobMetrics(registry),
	})
	if err != nil {
		logg.Error(ctx, "failed to create worker service", err)
		os.Exit(1)
	}

	if addr := os.Getenv("METRICS_ADDR"); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logg.Error(ctx, "metrics server stopped unexpectedly", err)
			}
		}()
	}

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "worker stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "worker shutting down gracefully")
}
