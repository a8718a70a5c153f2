package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/printcraft/printshop-backend/api/controllers"
	"github.com/printcraft/printshop-backend/api/middleware"
	"github.com/printcraft/printshop-backend/internal/cart"
	checkoutsvc "github.com/printcraft/printshop-backend/internal/checkout"
	"github.com/printcraft/printshop-backend/internal/orders"
	"github.com/printcraft/printshop-backend/internal/pricebook"
	"github.com/printcraft/printshop-backend/internal/products"
	"github.com/printcraft/printshop-backend/pkg/config"
	"github.com/printcraft/printshop-backend/pkg/db"
	"github.com/printcraft/printshop-backend/pkg/logger"
	"github.com/printcraft/printshop-backend/pkg/metrics"
	pkgredis "github.com/printcraft/printshop-backend/pkg/redis"
)

// Dependencies carries everything the HTTP surface needs. The admin routes
// assume an upstream gateway has already authenticated the caller.
type Dependencies struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *pkgredis.Client
	PriceBook       *pricebook.Book
	PricingMetrics  *metrics.PricingMetrics
	Registry        *prometheus.Registry
	ProductsRepo    *products.Repository
	ProductsService products.Service
	CartService     cart.Service
	CheckoutService checkoutsvc.Service
	OrdersService   orders.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore(deps.Redis), logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.ProductsService, logg))
			r.Get("/{slug}", controllers.ProductBySlug(deps.ProductsService, logg))
		})

		r.Post("/pricing/validate", controllers.PricingValidate(deps.ProductsRepo, deps.PricingMetrics, logg))

		r.Route("/pricebook", func(r chi.Router) {
			r.Get("/", controllers.PricebookFamilies(deps.PriceBook))
			r.Get("/{family}", controllers.PricebookFamily(deps.PriceBook, logg))
			r.Get("/{family}/price", controllers.PricebookLookup(deps.PriceBook, deps.PricingMetrics, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Post("/quote", controllers.CartQuote(deps.CartService, logg))
			r.Get("/{token}", controllers.CartGet(deps.CartService, logg))
		})

		r.Post("/checkout", controllers.Checkout(deps.CheckoutService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersByEmail(deps.OrdersService, logg))
			r.Get("/{orderNumber}", controllers.OrderByNumber(deps.OrdersService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminProductList(deps.ProductsService, logg))
				r.Post("/", controllers.AdminProductCreate(deps.ProductsService, logg))
				r.Patch("/{productID}", controllers.AdminProductUpdate(deps.ProductsService, logg))
				r.Delete("/{productID}", controllers.AdminProductDelete(deps.ProductsService, logg))
			})
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrderList(deps.OrdersService, logg))
				r.Patch("/{orderID}/status", controllers.AdminOrderStatus(deps.OrdersService, logg))
			})
		})
	})

	return r
}

func idempotencyStore(client *pkgredis.Client) pkgredis.IdempotencyStore {
	if client == nil {
		return nil
	}
	return client
}
