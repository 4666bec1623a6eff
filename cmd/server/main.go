package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightontime/backend/internal/api"
	"flightontime/backend/internal/common"
	"flightontime/backend/internal/config"
	"flightontime/backend/internal/db"
	"flightontime/backend/internal/logging"
	"flightontime/backend/internal/metrics"
	"flightontime/backend/internal/routes"
	"flightontime/backend/internal/workers"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("FlightOnTime starting up",
		"environment", cfg.AppEnv,
		"db_driver", cfg.DBDriver,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	// Connect to DB with GORM, migrations included
	gormDB, err := db.InitORM(cfg)
	if err != nil {
		logging.Fatal("Failed to connect to database (GORM)", "error", err.Error())
	}
	logging.Info("Connected to database (GORM)")

	// Connect to DB with sqlx
	sqlxDB, err := db.InitSQLX(cfg, gormDB)
	if err != nil {
		logging.Fatal("Failed to connect to database (sqlx)", "error", err.Error())
	}
	logging.Info("Connected to database (sqlx)")

	var redisClient *redis.Client
	if addr := cfg.RedisAddr(); addr != "" {
		redisClient = common.NewRedisClient(addr, cfg.RedisPassword)
		defer redisClient.Close()
	}

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	deps, err := api.InitDependencies(cfg, gormDB, sqlxDB, redisClient, metricsReg)
	if err != nil {
		logging.Fatal("Failed to initialize dependencies", "error", err.Error())
	}
	defer deps.Services.Cache.Close()

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	workers.InitWorkers(workerCtx, deps, cfg.StoreMonitorInterval)

	router := routes.RegisterRoutes(deps, routes.RouterOptions{
		JWTSecret:      []byte(cfg.JWTSecret),
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Gatherer:       prometheus.DefaultGatherer,
		UpSince:        time.Now(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info("Server starting",
			"port", cfg.Port,
			"environment", cfg.AppEnv,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Server stopped unexpectedly", "error", err.Error())
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logging.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err.Error())
	}
}
