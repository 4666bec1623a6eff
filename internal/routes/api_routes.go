package routes

import (
	"flightontime/backend/internal/api"
	"flightontime/backend/internal/auth"
	"flightontime/backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, opts RouterOptions) {
	limiter := middleware.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst)

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.MetricsMiddleware(deps.Metrics))
		v1.Use(limiter.Middleware)
		v1.Use(middleware.AuthMiddleware(opts.JWTSecret)) // every v1 route needs a caller token

		v1.With(middleware.RequirePermission(auth.ActionReadAirports)).
			Get("/airports/{iata}", api.GetAirportHandler(deps.Services.Airports))

		v1.With(middleware.RequirePermission(auth.ActionPredict)).
			Post("/predict", api.PredictHandler(deps.Services.Predictions, deps.Validate))

		v1.With(middleware.RequirePermission(auth.ActionReadStats)).
			Get("/stats", api.StatsHandler(deps.Services.Stats))
	})
}
