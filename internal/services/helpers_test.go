package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"flightontime/backend/internal/db/repositories"
	"flightontime/backend/internal/models/dtos"
	gormModels "flightontime/backend/internal/models/gorm"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	// every connection to :memory: is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&gormModels.Airport{}, &gormModels.PredictionRequest{}, &gormModels.Prediction{}))
	return db
}

func jfk() *gormModels.Airport {
	return &gormModels.Airport{
		IATA: "JFK", ICAO: "KJFK", Name: "John F. Kennedy International Airport",
		City: "New York", Country: "US", Latitude: 40.6413, Longitude: -73.7781,
		Timezone: "America/New_York", MapLink: gormModels.BuildMapLink(40.6413, -73.7781),
	}
}

func lax() *gormModels.Airport {
	return &gormModels.Airport{
		IATA: "LAX", ICAO: "KLAX", Name: "Los Angeles International Airport",
		City: "Los Angeles", Country: "US", Latitude: 33.9416, Longitude: -118.4085,
		Timezone: "America/Los_Angeles", MapLink: gormModels.BuildMapLink(33.9416, -118.4085),
	}
}

func seedAirports(t *testing.T, db *gorm.DB, airports ...*gormModels.Airport) {
	t.Helper()
	repo := repositories.NewAirportRepository(db)
	for _, a := range airports {
		_, err := repo.SaveIfAbsent(context.Background(), a)
		require.NoError(t, err)
	}
}

// Mock airport provider
type mockAirportFetcher struct {
	calls     atomic.Int32
	fetchFunc func(ctx context.Context, iata string) (*gormModels.Airport, error)
}

func (m *mockAirportFetcher) FetchByIATA(ctx context.Context, iata string) (*gormModels.Airport, error) {
	m.calls.Add(1)
	if m.fetchFunc == nil {
		return nil, nil
	}
	return m.fetchFunc(ctx, iata)
}

// Mock model service
type mockModel struct {
	calls       atomic.Int32
	lastQuery   atomic.Pointer[dtos.ModelQuery]
	predictFunc func(ctx context.Context, q dtos.ModelQuery) (*dtos.ModelResponse, error)
}

func (m *mockModel) Predict(ctx context.Context, q dtos.ModelQuery) (*dtos.ModelResponse, error) {
	m.calls.Add(1)
	m.lastQuery.Store(&q)
	return m.predictFunc(ctx, q)
}

func answer(verdict string, probability float64, confidence string) func(context.Context, dtos.ModelQuery) (*dtos.ModelResponse, error) {
	return func(context.Context, dtos.ModelQuery) (*dtos.ModelResponse, error) {
		p := probability
		return &dtos.ModelResponse{Verdict: verdict, Probability: &p, Confidence: confidence}, nil
	}
}

// Mock weather provider
type mockWeather struct {
	fetchFunc func(ctx context.Context, lat, lon float64, at time.Time) (dtos.WeatherFeatures, error)
}

func (m *mockWeather) FetchFeatures(ctx context.Context, lat, lon float64, at time.Time) (dtos.WeatherFeatures, error) {
	return m.fetchFunc(ctx, lat, lon, at)
}

func floatPtr(v float64) *float64 { return &v }
