package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds everything the server needs at startup.
type AppConfig struct {
	AppEnv string
	Port   string

	// DBDriver is "postgres" or "sqlite".
	DBDriver   string
	SQLitePath string
	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGDB       string

	// Redis is optional; an empty host disables the cross-instance fingerprint lock.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	LockTTL       time.Duration

	AirportAPIBaseURL string
	AirportAPIKey     string
	AirportAPITimeout time.Duration
	AirportCacheTTL   time.Duration

	ModelAPIBaseURL string
	ModelAPITimeout time.Duration

	WeatherEnabled    bool
	WeatherAPIBaseURL string
	WeatherAPITimeout time.Duration

	JWTSecret string

	RateLimitRPS   float64
	RateLimitBurst int

	StoreMonitorInterval time.Duration
}

// Load reads configuration from .env and the environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		AppEnv:     getenvDefault("APP_ENV", "development"),
		Port:       getenvDefault("PORT", "8080"),
		DBDriver:   getenvDefault("DB_DRIVER", "postgres"),
		SQLitePath: getenvDefault("SQLITE_PATH", "flightontime.db"),
		PGHost:     os.Getenv("PG_HOST"),
		PGPort:     getenvDefault("PG_PORT", "5432"),
		PGUser:     os.Getenv("PG_USER"),
		PGPassword: os.Getenv("PG_PASSWORD"),
		PGDB:       os.Getenv("PG_DB"),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getenvDefault("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		AirportAPIBaseURL: getenvDefault("AIRPORT_API_BASE_URL", "https://api.api-ninjas.com/v1"),
		AirportAPIKey:     os.Getenv("AIRPORT_API_KEY"),

		ModelAPIBaseURL: getenvDefault("MODEL_API_BASE_URL", "http://localhost:8000"),

		WeatherEnabled:    getenvBool("WEATHER_ENABLED", true),
		WeatherAPIBaseURL: getenvDefault("WEATHER_API_BASE_URL", "https://api.open-meteo.com/v1/forecast"),

		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	var err error
	if cfg.LockTTL, err = getenvDuration("PREDICTION_LOCK_TTL", "30s"); err != nil {
		return nil, err
	}
	if cfg.AirportAPITimeout, err = getenvDuration("AIRPORT_API_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.AirportCacheTTL, err = getenvDuration("AIRPORT_CACHE_TTL", "1h"); err != nil {
		return nil, err
	}
	if cfg.ModelAPITimeout, err = getenvDuration("MODEL_API_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.WeatherAPITimeout, err = getenvDuration("WEATHER_API_TIMEOUT", "5s"); err != nil {
		return nil, err
	}

	if cfg.StoreMonitorInterval, err = getenvDuration("STORE_MONITOR_INTERVAL", "1m"); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getenvFloat("RATE_LIMIT_RPS", 5); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getenvInt("RATE_LIMIT_BURST", 10); err != nil {
		return nil, err
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q: expected postgres or sqlite", cfg.DBDriver)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// PostgresDSN builds the lib/pq connection string.
func (c *AppConfig) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDB)
}

// RedisAddr returns host:port, or "" when Redis is not configured.
func (c *AppConfig) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	raw := getenvDefault(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
