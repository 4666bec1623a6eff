package api

import (
	"time"

	"flightontime/backend/internal/common"
	"flightontime/backend/internal/config"
	"flightontime/backend/internal/db/repositories"
	"flightontime/backend/internal/logging"
	"flightontime/backend/internal/metrics"
	"flightontime/backend/internal/providers"
	"flightontime/backend/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	gormlib "gorm.io/gorm"
)

type Repositories struct {
	Airports    *repositories.AirportRepository
	Predictions *repositories.PredictionRepository
	Stats       *repositories.PredictionStatsRepository
}

type Providers struct {
	Airports *providers.AirportProvider
	Model    *providers.ModelProvider
	Weather  *providers.OpenMeteoProvider
}

type Services struct {
	Cache       common.CacheInterface
	Airports    *services.AirportResolver
	Predictions *services.PredictionService
	Stats       *services.StatsService
}

type Dependencies struct {
	Repo      *Repositories
	Providers *Providers
	Services  *Services
	Metrics   *metrics.MetricsRegistry
	Validate  *validator.Validate

	SQLX  *sqlx.DB
	Redis *redis.Client
}

// InitDependencies wires repositories, providers and services. redisClient may
// be nil, in which case predictions are only deduplicated within this process.
func InitDependencies(cfg *config.AppConfig, gormDB *gormlib.DB, sqlxDB *sqlx.DB, redisClient *redis.Client, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Airports:    repositories.NewAirportRepository(gormDB),
		Predictions: repositories.NewPredictionRepository(gormDB),
		Stats:       repositories.NewPredictionStatsRepository(sqlxDB),
	}

	provs := &Providers{
		Airports: providers.NewAirportProvider(cfg.AirportAPIBaseURL, cfg.AirportAPIKey, cfg.AirportAPITimeout),
		Model:    providers.NewModelProvider(cfg.ModelAPIBaseURL, cfg.ModelAPITimeout),
	}

	cacheSvc := common.NewCacheService(cfg.AirportCacheTTL, 10*time.Minute)

	resolver := services.NewAirportResolver(
		repos.Airports,
		provs.Airports,
		services.WithAirportCache(cacheSvc, cfg.AirportCacheTTL),
		services.WithResolverMetrics(metricsReg),
	)

	predictionOpts := []services.PredictionServiceOption{
		services.WithPredictionMetrics(metricsReg),
		// lock wait, two weather lookups and the model call
		services.WithFlightTimeout(cfg.LockTTL + 2*cfg.WeatherAPITimeout + cfg.ModelAPITimeout),
	}
	if cfg.WeatherEnabled {
		provs.Weather = providers.NewOpenMeteoProvider(cfg.WeatherAPIBaseURL, cfg.WeatherAPITimeout)
		predictionOpts = append(predictionOpts, services.WithWeather(provs.Weather))
	}
	if redisClient != nil {
		predictionOpts = append(predictionOpts, services.WithFingerprintLock(common.NewRedisFingerprintLock(redisClient), cfg.LockTTL))
	} else {
		logging.Info("Redis not configured, prediction dedup is process-local")
	}

	svcs := &Services{
		Cache:       cacheSvc,
		Airports:    resolver,
		Predictions: services.NewPredictionService(resolver, repos.Predictions, provs.Model, predictionOpts...),
		Stats:       services.NewStatsService(repos.Stats),
	}

	return &Dependencies{
		Repo:      repos,
		Providers: provs,
		Services:  svcs,
		Metrics:   metricsReg,
		Validate:  validator.New(validator.WithRequiredStructEnabled()),
		SQLX:      sqlxDB,
		Redis:     redisClient,
	}, nil
}
