package main

// @title Trip Planner Backend API
// @version 1.0.0
// @description Backend core for trip planning: OpenStreetMap POI data per destination city and flight offer aggregation.
// @description
// @description Main features:
// @description - Priced flight search for a single route with short-lived result caching
// @description - Multi-city price comparison ranked by the cheapest found offer
// @description - POI sync status reporting per destination city
// @description - Linking POIs to external place records

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/trip-planner-backend/docs"
	"github.com/trip-planner-backend/internal/config"
	httpDelivery "github.com/trip-planner-backend/internal/delivery/http"
	"github.com/trip-planner-backend/internal/delivery/http/handler"
	"github.com/trip-planner-backend/internal/infrastructure/amadeus"
	"github.com/trip-planner-backend/internal/pkg/logger"
	"github.com/trip-planner-backend/internal/repository/cache"
	"github.com/trip-planner-backend/internal/repository/postgres"
	"github.com/trip-planner-backend/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Trip Planner Backend")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories and external clients
	poiRepo := postgres.NewPOIRepository(db, cfg.Sync.BatchSize)
	cityRepo := postgres.NewCityRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)

	amadeusClient, err := amadeus.NewClient(&cfg.Amadeus, cfg.IsProduction(), log)
	if err != nil {
		log.Fatal("Failed to initialize Amadeus client", zap.Error(err))
	}

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	deeplinkBuilder := usecase.NewDeeplinkBuilder(cfg.Deeplink.TravelpayoutsMarker)

	flightUC := usecase.NewFlightUseCase(
		amadeusClient,
		cityRepo,
		cacheRepo,
		deeplinkBuilder,
		&cfg.Cache,
		&cfg.Sync,
		log,
	)

	poiUC := usecase.NewPOIUseCase(poiRepo, cfg.Sync.CountryCode, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	flightHandler := handler.NewFlightHandler(flightUC, log)
	poiHandler := handler.NewPOIHandler(poiUC, log)

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(cfg, log, flightHandler, poiHandler)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
