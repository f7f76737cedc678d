package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wakil120/ShopReview/internal/service"
	"github.com/wakil120/ShopReview/pkg/health"
	"github.com/wakil120/ShopReview/pkg/middleware"
)

// RouterConfig carries the tunables the router needs beyond its
// collaborators.
type RouterConfig struct {
	ServiceName    string
	CORS           middleware.CORSConfig
	RateLimitRPS   int
	RateLimitBurst int
}

// NewRouter creates a chi router with all shop and review routes
// registered. Fixed-path shop routes (/search, /compare,
// /compare-by-name) are registered before the parametric /{id} route so
// they are never shadowed.
func NewRouter(
	cfg RouterConfig,
	shopService *service.ShopService,
	reviewService *service.ReviewService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))

	// Operational endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	rateLimit := middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)

	// Shop API endpoints
	shopHandler := NewShopHandler(shopService, logger)

	r.Route("/api/v1/shops", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", shopHandler.ListShops)
		r.Get("/search", shopHandler.SearchShops)
		r.Get("/compare", shopHandler.CompareShops)
		r.Get("/compare-by-name", shopHandler.CompareShopsByName)
		r.Get("/{id}", shopHandler.GetShop)
		r.With(rateLimit).Post("/", shopHandler.CreateShop)
	})

	// Review API endpoints
	reviewHandler := NewReviewHandler(reviewService, logger)

	r.Route("/api/v1/reviews", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/single/{id}", reviewHandler.GetReview)
		r.Get("/{shopId}", reviewHandler.ListShopReviews)
		r.With(rateLimit).Post("/", reviewHandler.AddReview)
		r.With(rateLimit).Delete("/{id}", reviewHandler.DeleteReview)
	})

	return r
}
