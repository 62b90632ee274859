package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nkhandel/dietplanner-backend/api/routes"
	"github.com/nkhandel/dietplanner-backend/internal/alerts"
	"github.com/nkhandel/dietplanner-backend/internal/auth"
	"github.com/nkhandel/dietplanner-backend/internal/cart"
	"github.com/nkhandel/dietplanner-backend/internal/checkout"
	"github.com/nkhandel/dietplanner-backend/internal/dietplans"
	"github.com/nkhandel/dietplanner-backend/internal/mailer"
	"github.com/nkhandel/dietplanner-backend/internal/orders"
	"github.com/nkhandel/dietplanner-backend/internal/products"
	"github.com/nkhandel/dietplanner-backend/internal/profiles"
	"github.com/nkhandel/dietplanner-backend/internal/users"
	"github.com/nkhandel/dietplanner-backend/pkg/auth/session"
	"github.com/nkhandel/dietplanner-backend/pkg/config"
	"github.com/nkhandel/dietplanner-backend/pkg/db"
	"github.com/nkhandel/dietplanner-backend/pkg/logger"
	"github.com/nkhandel/dietplanner-backend/pkg/metrics"
	"github.com/nkhandel/dietplanner-backend/pkg/migrate"
	"github.com/nkhandel/dietplanner-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	mail, err := mailer.New(cfg.SMTP, cfg.Mailer, logg, metrics.NewMailerMetrics(prometheus.DefaultRegisterer))
	if err != nil {
		logg.Error(ctx, "failed to create mailer", err)
		os.Exit(1)
	}
	mail.Start(ctx)
	defer mail.Close()

	conn := dbClient.DB()
	productRepo := products.NewRepository(conn)
	userRepo := users.NewRepository(conn)

	alertService, err := alerts.NewService(alerts.NewRepository(conn), productRepo, userRepo, mail, logg, cfg.Alerts)
	if err != nil {
		logg.Error(ctx, "failed to create alert service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
		Mailer:         mail,
	})
	if err != nil {
		logg.Error(ctx, "failed to create register service", err)
		os.Exit(1)
	}

	dietPlanService, err := dietplans.NewService(dietplans.NewRepository(conn), profiles.NewRepository(conn))
	if err != nil {
		logg.Error(ctx, "failed to create diet plan service", err)
		os.Exit(1)
	}

	profileService, err := profiles.NewService(profiles.NewRepository(conn), dietPlanService, logg)
	if err != nil {
		logg.Error(ctx, "failed to create profile service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(productRepo, alertService)
	if err != nil {
		logg.Error(ctx, "failed to create product service", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewStore(redisClient, cfg.Cart)
	if err != nil {
		logg.Error(ctx, "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cartStore, productRepo)
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		DB:       dbClient,
		Cart:     cartStore,
		Users:    userRepo,
		Mailer:   mail,
		Observer: alertService,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.NewRepository(conn), productRepo, userRepo)
	if err != nil {
		logg.Error(ctx, "failed to create order service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			sessionManager,
			authService,
			registerService,
			profileService,
			dietPlanService,
			productService,
			cartService,
			checkoutService,
			orderService,
		),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "api server shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(startCtx, "api server stopped")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(startCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	}
}
