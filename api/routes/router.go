package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/weilintw/farmgate-backend/api/controllers"
	"github.com/weilintw/farmgate-backend/api/middleware"
	deliverysvc "github.com/weilintw/farmgate-backend/internal/deliveries"
	"github.com/weilintw/farmgate-backend/internal/receiving"
	"github.com/weilintw/farmgate-backend/pkg/config"
	"github.com/weilintw/farmgate-backend/pkg/logger"
	"github.com/weilintw/farmgate-backend/pkg/metrics"
)

// NewRouter assembles the full HTTP surface: health probes, prometheus
// metrics, and the delivery API.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	deliveryService deliverysvc.Service,
	importService receiving.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	httpMetrics := metrics.NewHTTPMetrics(registry)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		httpMetrics.Middleware(),
		chimiddleware.Timeout(cfg.HTTP.RequestTimeout),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/deliveries", func(r chi.Router) {
		r.Get("/", controllers.DeliveriesList(deliveryService, logg))
		r.Get("/summary", controllers.DeliveriesSummary(deliveryService, logg))
		r.Post("/", controllers.DeliveriesCreate(deliveryService, logg))
		r.Post("/batch", controllers.DeliveriesCreateBatch(deliveryService, logg))
		r.Post("/import", controllers.DeliveriesImport(importService, cfg, logg))
		r.Patch("/{id}", controllers.DeliveriesUpdate(deliveryService, logg))
	})

	return r
}
