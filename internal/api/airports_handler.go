package api

import (
	"context"
	"net/http"
	"time"

	"flightontime/backend/internal/common"
	"flightontime/backend/internal/models/dtos"
	"flightontime/backend/internal/models/gorm"

	"github.com/go-chi/chi/v5"
)

// AirportLookup resolves an IATA code to a stored airport
type AirportLookup interface {
	Resolve(ctx context.Context, iata string) (*gorm.Airport, error)
}

// GetAirportHandler handles GET /api/v1/airports/{iata}
// Resolves the airport locally, fetching it from the airport provider on first use
func GetAirportHandler(resolver AirportLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		airport, err := resolver.Resolve(r.Context(), chi.URLParam(r, "iata"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Airport resolved", toAirportResponse(airport))
	}
}

func toAirportResponse(a *gorm.Airport) dtos.AirportResponse {
	return dtos.AirportResponse{
		IATA:      a.IATA,
		ICAO:      a.ICAO,
		Name:      a.Name,
		City:      a.City,
		Country:   a.Country,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
		Elevation: a.Elevation,
		Timezone:  a.Timezone,
		MapLink:   a.MapLink,
	}
}
