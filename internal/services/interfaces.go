package services

import (
	"context"
	"time"

	"flightontime/backend/internal/models/dtos"
	"flightontime/backend/internal/models/entities"
	"flightontime/backend/internal/models/gorm"
)

// AirportStore is the local airport table
type AirportStore interface {
	FindByIATA(ctx context.Context, iata string) (*gorm.Airport, error)
	SaveIfAbsent(ctx context.Context, airport *gorm.Airport) (*gorm.Airport, error)
}

// AirportFetcher is the remote airport reference provider. A miss is (nil, nil).
type AirportFetcher interface {
	FetchByIATA(ctx context.Context, iata string) (*gorm.Airport, error)
}

// ModelClient is the remote prediction model
type ModelClient interface {
	Predict(ctx context.Context, query dtos.ModelQuery) (*dtos.ModelResponse, error)
}

// WeatherClient supplies weather features for a location and hour
type WeatherClient interface {
	FetchFeatures(ctx context.Context, lat, lon float64, at time.Time) (dtos.WeatherFeatures, error)
}

// PredictionStore holds prediction requests with their owned prediction
type PredictionStore interface {
	FindByFingerprint(ctx context.Context, fp entities.Fingerprint) (*gorm.PredictionRequest, error)
	SaveWithPrediction(ctx context.Context, req *gorm.PredictionRequest) error
}

// PredictionReader reads every stored prediction
type PredictionReader interface {
	ListPredictions(ctx context.Context) ([]entities.PredictionRow, error)
}

// Resolver resolves an IATA code to a stored airport
type Resolver interface {
	Resolve(ctx context.Context, iata string) (*gorm.Airport, error)
}
