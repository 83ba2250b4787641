package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/admin"
	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/auth"
	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/service"
	"github.com/Emmanation-Designs/Gibsons-Collections3/pkg/health"
	"github.com/Emmanation-Designs/Gibsons-Collections3/pkg/middleware"
)

// RouterConfig carries the handler-level knobs the router needs.
type RouterConfig struct {
	CORS          middleware.CORSConfig
	AuthRateRPS   int
	AuthRateBurst int
	PprofCIDRs    []string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	catalog *service.CatalogService,
	state *service.StateService,
	account *service.AccountService,
	checkout *service.CheckoutService,
	jwtManager *auth.JWTManager,
	allowlist *admin.Allowlist,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	// Token validator that bridges to the internal JWTManager.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID: claims.UserID,
			Email:  claims.Email,
		}, nil
	}

	productHandler := NewProductHandler(catalog, logger)
	stateHandler := NewStateHandler(state, logger)
	checkoutHandler := NewCheckoutHandler(checkout, logger)
	authHandler := NewAuthHandler(account, allowlist, logger)

	// Public catalog endpoints
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", productHandler.ListProducts)
		r.Get("/{id}", productHandler.GetProduct)
	})
	r.Get("/api/v1/categories", productHandler.ListCategories)

	// Per-client cart and wishlist endpoints
	r.Group(func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(ClientID)

		r.Get("/api/v1/state", stateHandler.GetState)

		r.Delete("/api/v1/cart", stateHandler.ClearCart)
		r.Post("/api/v1/cart/items", stateHandler.AddItem)
		r.Put("/api/v1/cart/items/{productId}", stateHandler.UpdateItemQuantity)
		r.Delete("/api/v1/cart/items/{productId}", stateHandler.RemoveItem)

		r.Get("/api/v1/wishlist", stateHandler.GetWishlist)
		r.Post("/api/v1/wishlist/{productId}/toggle", stateHandler.ToggleWishlist)

		r.Post("/api/v1/checkout", checkoutHandler.Checkout)
	})

	r.Get("/api/v1/support", checkoutHandler.Support)

	// Auth endpoints (public, rate limited)
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.RateLimit(cfg.AuthRateRPS, cfg.AuthRateBurst, logger))

		r.Post("/signup", authHandler.SignUp)
		r.Post("/signin", authHandler.SignIn)
		r.Post("/signout", authHandler.SignOut)
		r.Post("/refresh", authHandler.Refresh)
	})

	// Profile endpoints (auth required)
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(tokenValidator))

		r.Get("/me", authHandler.GetProfile)
		r.Put("/me", authHandler.UpdateProfile)
	})

	// Admin catalog management (auth + allow-list required)
	r.Route("/api/v1/admin/products", func(r chi.Router) {
		r.Use(middleware.Auth(tokenValidator))
		r.Use(RequireAdmin(allowlist))

		r.Post("/", productHandler.CreateProduct)
		r.Put("/{id}", productHandler.UpdateProduct)
		r.Delete("/{id}", productHandler.DeleteProduct)
	})

	return r
}
