package routes

import (
	"net/http"
	"time"

	"flightontime/backend/internal/api"
	"flightontime/backend/internal/logging"
	"flightontime/backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions carries what the router needs beyond the dependency container
type RouterOptions struct {
	JWTSecret      []byte
	RateLimitRPS   float64
	RateLimitBurst int
	Gatherer       prometheus.Gatherer
	UpSince        time.Time
}

func RegisterRoutes(deps *api.Dependencies, opts RouterOptions) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.Logging)
	r.Use(middleware.InFlightMiddleware(deps.Metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// health check
	optional := map[string]api.Pinger{}
	if deps.Redis != nil {
		optional["redis"] = api.RedisPinger{Client: deps.Redis}
	}
	r.Get("/healthCheck", api.HealthCheckHandler(deps.SQLX, optional, opts.UpSince))

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	RegisterAPIRoutes(r, deps, opts)

	return r
}
