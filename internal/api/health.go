package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"flightontime/backend/internal/models/entities"

	"github.com/redis/go-redis/v9"
)

// Pinger is any dependency the health check can probe
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RedisPinger adapts a redis client to Pinger
type RedisPinger struct {
	Client *redis.Client
}

func (p RedisPinger) PingContext(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}

// HealthCheckHandler handles GET /healthCheck
// The database is required; every other probe is reported but optional.
func HealthCheckHandler(db Pinger, optional map[string]Pinger, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		services := make(map[string]entities.ServiceStatus)

		dbStatus := "ok"
		dbDetails := "Database Connected"
		if err := db.PingContext(ctx); err != nil {
			dbStatus = "down"
			dbDetails = err.Error()
		}
		services["database"] = entities.ServiceStatus{
			Status:  dbStatus,
			Details: dbDetails,
		}

		for name, p := range optional {
			status := entities.ServiceStatus{Status: "ok", Details: "Connected"}
			if err := p.PingContext(ctx); err != nil {
				status = entities.ServiceStatus{Status: "degraded", Details: err.Error()}
			}
			services[name] = status
		}

		overallStatus := "ok"
		code := http.StatusOK
		if dbStatus != "ok" {
			overallStatus = "down"
			code = http.StatusServiceUnavailable
		}

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
