package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trip-planner-backend/internal/config"
	"github.com/trip-planner-backend/internal/domain"
	"github.com/trip-planner-backend/internal/infrastructure/overpass"
	"github.com/trip-planner-backend/internal/pkg/logger"
	"github.com/trip-planner-backend/internal/repository/postgres"
	"github.com/trip-planner-backend/internal/usecase"
	"go.uber.org/zap"
)

// Usage:
//
//	sync            run a full POI sync over every active city
//	sync <city>     sync one city by English name
//	sync status     print per-city sync counters
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

	log.Info("Starting POI sync worker",
		zap.String("country", cfg.Sync.CountryCode),
		zap.String("locale", cfg.Sync.Locale))

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

	// 4. Initialize repositories and the Overpass client
	poiRepo := postgres.NewPOIRepository(db, cfg.Sync.BatchSize)
	cityRepo := postgres.NewCityRepository(db)
	fetcher := overpass.NewClient(&cfg.Overpass, log)

	syncUC := usecase.NewSyncUseCase(cityRepo, poiRepo, fetcher, &cfg.Sync, log)

	// 5. Cancel the run on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Warn("Interrupted, cancelling sync")
		cancel()
	}()

	// 6. Dispatch on the subcommand
	if err := run(ctx, syncUC, os.Args[1:]); err != nil {
		log.Error("Sync run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, syncUC *usecase.SyncUseCase, args []string) error {
	if len(args) > 0 && args[0] == "status" {
		status, err := syncUC.Status(ctx)
		if err != nil {
			return err
		}
		printStatus(status)
		return nil
	}

	var summary *domain.SyncSummary
	var err error
	if len(args) > 0 {
		summary, err = syncUC.SyncCity(ctx, args[0])
	} else {
		summary, err = syncUC.SyncAll(ctx)
	}
	if err != nil {
		return err
	}

	printSummary(summary)
	return nil
}

func printSummary(summary *domain.SyncSummary) {
	fmt.Printf("Sync started at %s\n\n", summary.StartedAt.Format(time.RFC3339))
	fmt.Printf("%-12s %10s %12s\n", "CITY", "UPSERTED", "DEACTIVATED")
	for _, city := range summary.Cities {
		if city.Skipped {
			fmt.Printf("%-12s %23s\n", city.CityNameEn, "skipped (no bbox)")
			continue
		}
		fmt.Printf("%-12s %10d %12d\n", city.CityNameEn, city.Upserted, city.Deactivated)
	}
	fmt.Printf("\nTotal: %d upserted, %d deactivated\n", summary.Upserted, summary.Deactivated)
}

func printStatus(status []domain.POISyncStatus) {
	fmt.Printf("%-12s %8s %8s %10s %10s %s\n",
		"CITY", "TOTAL", "ACTIVE", "INACTIVE", "PLACE_ID", "LAST_SYNCED")
	for _, row := range status {
		lastSynced := "never"
		if row.LastSynced != nil {
			lastSynced = row.LastSynced.Format(time.RFC3339)
		}
		fmt.Printf("%-12s %8d %8d %10d %10d %s\n",
			row.CityNameEn, row.Total, row.Active, row.Inactive, row.WithPlaceID, lastSynced)
	}
}
