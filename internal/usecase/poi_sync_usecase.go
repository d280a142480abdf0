package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/trip-planner-backend/internal/config"
	"github.com/trip-planner-backend/internal/domain"
	"github.com/trip-planner-backend/internal/domain/repository"
	"go.uber.org/zap"
)

// OverpassFetcher pulls raw OSM elements for one bounding box.
type OverpassFetcher interface {
	FetchByBoundingBox(ctx context.Context, region, bbox string) ([]domain.OverpassElement, error)
}

// cityBoundingBoxes maps a city's English name to its Overpass bbox
// (south,west,north,east). Cities without an entry are skipped with a
// notice; extend this table when onboarding a new city.
var cityBoundingBoxes = map[string]string{
	"Tokyo":   "35.55,139.50,35.82,139.92",
	"Osaka":   "34.55,135.35,34.80,135.65",
	"Kyoto":   "34.90,135.65,35.10,135.85",
	"Fukuoka": "33.48,130.28,33.70,130.52",
	"Sapporo": "42.95,141.20,43.18,141.50",
	"Naha":    "26.15,127.60,26.35,127.78",
}

// SyncUseCase drives the OSM POI pipeline: fetch, transform, upsert,
// deactivate-stale, one city at a time.
type SyncUseCase struct {
	cityRepo      repository.CityRepository
	poiRepo       repository.POIRepository
	fetcher       OverpassFetcher
	logger        *zap.Logger
	locale        string
	countryCode   string
	courtesyDelay time.Duration
}

func NewSyncUseCase(
	cityRepo repository.CityRepository,
	poiRepo repository.POIRepository,
	fetcher OverpassFetcher,
	cfg *config.SyncConfig,
	logger *zap.Logger,
) *SyncUseCase {
	return &SyncUseCase{
		cityRepo:      cityRepo,
		poiRepo:       poiRepo,
		fetcher:       fetcher,
		logger:        logger,
		locale:        cfg.Locale,
		countryCode:   cfg.CountryCode,
		courtesyDelay: cfg.CourtesyDelay,
	}
}

// SyncAll runs a full pass over every active city in the configured
// country. A fetch failure aborts the run: a partial pass followed by
// deactivation elsewhere is worse than retrying the whole run later.
func (uc *SyncUseCase) SyncAll(ctx context.Context) (*domain.SyncSummary, error) {
	cities, err := uc.cityRepo.ListActive(ctx, uc.countryCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return uc.syncCities(ctx, cities)
}

// SyncCity runs the pass for a single city, matched case-insensitively by
// English name.
func (uc *SyncUseCase) SyncCity(ctx context.Context, cityName string) (*domain.SyncSummary, error) {
	cities, err := uc.cityRepo.ListActive(ctx, uc.countryCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}

	for _, city := range cities {
		if strings.EqualFold(city.NameEn, cityName) {
			return uc.syncCities(ctx, []domain.City{city})
		}
	}

	available := make([]string, 0, len(cities))
	for _, city := range cities {
		available = append(available, city.NameEn)
	}
	sort.Strings(available)
	return nil, fmt.Errorf("unknown city %q, available: %s", cityName, strings.Join(available, ", "))
}

// Status reports the per-city sync counters for the configured country.
func (uc *SyncUseCase) Status(ctx context.Context) ([]domain.POISyncStatus, error) {
	return uc.poiRepo.SyncStatus(ctx, uc.countryCode)
}

func (uc *SyncUseCase) syncCities(ctx context.Context, cities []domain.City) (*domain.SyncSummary, error) {
	summary := &domain.SyncSummary{
		StartedAt: time.Now(),
		Cities:    make([]domain.CitySyncResult, 0, len(cities)),
	}

	uc.logger.Info("Starting POI sync",
		zap.Int("cities", len(cities)),
		zap.String("country", uc.countryCode))

	for i, city := range cities {
		result, err := uc.syncCity(ctx, city, summary.StartedAt)
		if err != nil {
			return nil, fmt.Errorf("sync failed for %s: %w", city.NameEn, err)
		}

		summary.Cities = append(summary.Cities, *result)
		summary.Upserted += result.Upserted
		summary.Deactivated += result.Deactivated

		// Courtesy pause between Overpass requests, not after the last one.
		if !result.Skipped && i < len(cities)-1 && uc.courtesyDelay > 0 {
			select {
			case <-time.After(uc.courtesyDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	uc.logger.Info("POI sync finished",
		zap.Int64("upserted", summary.Upserted),
		zap.Int64("deactivated", summary.Deactivated),
		zap.Duration("took", time.Since(summary.StartedAt)))

	return summary, nil
}

// syncCity runs one city's fetch/transform/upsert/deactivate sequence.
// startedAt is the run's single anchor timestamp: every upserted row gets
// it as last_synced_at, and staleness is judged against it, so rows
// written during the pass are never deactivated by it.
func (uc *SyncUseCase) syncCity(ctx context.Context, city domain.City, startedAt time.Time) (*domain.CitySyncResult, error) {
	result := &domain.CitySyncResult{CityNameEn: city.NameEn}

	bbox, ok := cityBoundingBoxes[city.NameEn]
	if !ok {
		uc.logger.Warn("No bounding box configured, skipping city",
			zap.String("city", city.NameEn))
		result.Skipped = true
		return result, nil
	}

	elements, err := uc.fetcher.FetchByBoundingBox(ctx, city.NameEn, bbox)
	if err != nil {
		return nil, err
	}

	records := TransformElements(elements, city.ID, uc.locale)
	uc.logger.Info("Transformed city elements",
		zap.String("city", city.NameEn),
		zap.Int("fetched", len(elements)),
		zap.Int("records", len(records)))

	upserted, err := uc.poiRepo.UpsertBatch(ctx, records, startedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert failed: %w", err)
	}
	result.Upserted = upserted

	deactivated, err := uc.poiRepo.DeactivateStale(ctx, city.ID, startedAt)
	if err != nil {
		return nil, fmt.Errorf("deactivation failed: %w", err)
	}
	result.Deactivated = deactivated

	uc.logger.Info("City synced",
		zap.String("city", city.NameEn),
		zap.Int64("upserted", upserted),
		zap.Int64("deactivated", deactivated))

	return result, nil
}
