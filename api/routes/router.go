package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nkhandel/dietplanner-backend/api/controllers"
	"github.com/nkhandel/dietplanner-backend/api/middleware"
	"github.com/nkhandel/dietplanner-backend/internal/auth"
	cartsvc "github.com/nkhandel/dietplanner-backend/internal/cart"
	checkoutsvc "github.com/nkhandel/dietplanner-backend/internal/checkout"
	"github.com/nkhandel/dietplanner-backend/internal/dietplans"
	ordersvc "github.com/nkhandel/dietplanner-backend/internal/orders"
	productsvc "github.com/nkhandel/dietplanner-backend/internal/products"
	"github.com/nkhandel/dietplanner-backend/internal/profiles"
	"github.com/nkhandel/dietplanner-backend/pkg/auth/session"
	"github.com/nkhandel/dietplanner-backend/pkg/config"
	"github.com/nkhandel/dietplanner-backend/pkg/db"
	"github.com/nkhandel/dietplanner-backend/pkg/logger"
	"github.com/nkhandel/dietplanner-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionVerifier session.AccessSessionChecker,
	sessionRotator controllers.SessionRotator,
	authService auth.Service,
	registerService auth.RegisterService,
	profileService profiles.Service,
	dietPlanService dietplans.Service,
	productService productsvc.Service,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	orderService ordersvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	requireAuth := middleware.Auth(cfg.JWT, sessionVerifier, logg)

	// A nil *redis.Client must stay a nil interface inside the middleware.
	var idemStore redis.IdempotencyStore
	if redisClient != nil {
		idemStore = redisClient
	}
	idempotency := middleware.Idempotency(idemStore, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg), idempotency).Post("/register", controllers.AuthRegister(registerService, authService, logg))
		r.Post("/refresh", controllers.AuthRefresh(sessionRotator, cfg.JWT, logg))
		r.With(requireAuth).Post("/logout", controllers.AuthLogout(authService, logg))
	})

	// Catalogue browsing is open; everything that touches a user's own data
	// sits behind auth.
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(productService, logg))
		r.Get("/{kind}/{productId}", controllers.ProductGet(productService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(requireAuth)

		r.Route("/v1/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileGet(profileService, logg))
			r.Put("/", controllers.ProfileUpsert(profileService, logg))
			r.Post("/goal", controllers.ProfileSetGoal(profileService, logg))
		})

		r.Route("/v1/diet-plans", func(r chi.Router) {
			r.Post("/generate", controllers.DietPlanGenerate(dietPlanService, logg))
			r.Get("/current", controllers.DietPlanCurrent(dietPlanService, logg))
			r.Get("/", controllers.DietPlanList(dietPlanService, logg))
		})

		r.Route("/v1/cart", func(r chi.Router) {
			r.Get("/", controllers.CartView(cartService, logg))
			r.Post("/items", controllers.CartAdd(cartService, logg))
			r.Put("/items", controllers.CartSetQuantity(cartService, logg))
			r.Delete("/items", controllers.CartRemove(cartService, logg))
		})

		r.With(idempotency).Post("/v1/checkout", controllers.Checkout(checkoutService, logg))

		r.Route("/v1/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(orderService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(orderService, logg))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(middleware.RequireStaff(logg))

		r.Route("/v1/products", func(r chi.Router) {
			r.Post("/", controllers.ProductCreate(productService, logg))
			r.Put("/{kind}/{productId}", controllers.ProductUpdate(productService, logg))
		})
		r.Route("/v1/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(orderService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(orderService, logg))
			r.Put("/{orderId}/status", controllers.AdminOrderUpdateStatus(orderService, logg))
		})
		r.Get("/v1/dashboard", controllers.AdminDashboard(orderService, logg))
	})

	return r
}
