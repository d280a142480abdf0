package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/trip-planner-backend/internal/domain"
	"github.com/trip-planner-backend/internal/domain/repository"
	"go.uber.org/zap"
)

// POIUseCase covers the POI operations the API exposes directly.
type POIUseCase struct {
	poiRepo     repository.POIRepository
	logger      *zap.Logger
	countryCode string
}

func NewPOIUseCase(poiRepo repository.POIRepository, countryCode string, logger *zap.Logger) *POIUseCase {
	return &POIUseCase{
		poiRepo:     poiRepo,
		logger:      logger,
		countryCode: countryCode,
	}
}

// PatchGooglePlaceID links a POI to its external place record. The link is
// write-once: a second patch reports updated=false instead of overwriting.
func (uc *POIUseCase) PatchGooglePlaceID(ctx context.Context, id uuid.UUID, placeID string) (bool, error) {
	updated, err := uc.poiRepo.SetGooglePlaceID(ctx, id, placeID)
	if err != nil {
		return false, err
	}
	if !updated {
		uc.logger.Debug("POI already linked to a place",
			zap.String("poi_id", id.String()))
	}
	return updated, nil
}

// SyncStatus reports per-city POI counters for the configured country.
func (uc *POIUseCase) SyncStatus(ctx context.Context) ([]domain.POISyncStatus, error) {
	return uc.poiRepo.SyncStatus(ctx, uc.countryCode)
}
