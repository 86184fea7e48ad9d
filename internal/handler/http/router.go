package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SONUshilla/CartBackend/internal/service"
	"github.com/SONUshilla/CartBackend/pkg/health"
	"github.com/SONUshilla/CartBackend/pkg/middleware"
)

// RouterConfig bundles the handlers and cross-cutting dependencies the
// router needs.
type RouterConfig struct {
	Users     *service.UserService
	Catalog   *service.CatalogService
	Cart      *service.CartService
	Addresses *service.AddressService
	Checkout  *service.CheckoutService
	Orders    *service.OrderService

	TokenValidator middleware.TokenValidator
	Health         *health.Handler
	CORS           middleware.CORSConfig
	Logger         *slog.Logger

	// Per-IP rate limit applied to register and login.
	AuthRPS   int
	AuthBurst int
}

// NewRouter creates a chi router with all routes registered. Route paths keep
// the storefront's published contract, camelCase and all.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("cartbackend"))
	r.Use(middleware.Tracing("cartbackend"))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health and metrics endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	authHandler := NewAuthHandler(cfg.Users, cfg.Logger)
	catalogHandler := NewCatalogHandler(cfg.Catalog, cfg.Logger)
	cartHandler := NewCartHandler(cfg.Cart, cfg.Logger)
	orderHandler := NewOrderHandler(cfg.Checkout, cfg.Orders, cfg.Logger)
	addressHandler := NewAddressHandler(cfg.Addresses, cfg.Logger)

	// Public endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.AuthRPS, cfg.AuthBurst, cfg.Logger))
		r.Use(ContentTypeJSON)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})
	r.Get("/products", catalogHandler.ListProducts)
	r.Get("/products/{id}", catalogHandler.GetProduct)
	r.Get("/categories", catalogHandler.ListCategories)

	// Authenticated endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.TokenValidator))
		r.Use(ContentTypeJSON)

		r.Get("/check-session", authHandler.CheckSession)

		r.Post("/cart", cartHandler.AddToCart)
		r.Get("/getCart", cartHandler.GetCart)
		r.Post("/cart/delete", cartHandler.RemoveFromCart)

		r.Get("/getAddresses", addressHandler.GetAddresses)
		r.Post("/addAddress", addressHandler.AddAddress)
		r.Post("/updateAddress", addressHandler.UpdateAddress)
		r.Post("/deleteAddress", addressHandler.DeleteAddress)

		r.Post("/checkout", orderHandler.Checkout)
		r.Get("/orders", orderHandler.ListOrders)
		r.Get("/orders/{id}", orderHandler.GetOrder)
		r.Patch("/orders/{id}/cancel", orderHandler.CancelOrder)
	})

	return r
}
