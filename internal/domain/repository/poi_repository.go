package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/trip-planner-backend/internal/domain"
)

// POIRepository is the write surface of the POI sync pipeline plus the
// small read/patch operations the API exposes.
type POIRepository interface {
	// UpsertBatch writes canonical records in fixed-size chunks with
	// insert-or-update-on-conflict keyed by (source, source_id). Every
	// touched row is reactivated and has last_synced_at advanced to
	// syncedAt. Returns the total affected-row count.
	UpsertBatch(ctx context.Context, pois []domain.POIUpsert, syncedAt time.Time) (int64, error)

	// DeactivateStale flips is_active off for the city's OSM rows whose
	// last_synced_at predates syncStartedAt. Must run after all chunks of
	// the city's pass are written.
	DeactivateStale(ctx context.Context, cityID uuid.UUID, syncStartedAt time.Time) (int64, error)

	// SetGooglePlaceID stores the external place identifier once.
	// Returns false without error when the POI already has one, and
	// ErrPOINotFound when the POI does not exist.
	SetGooglePlaceID(ctx context.Context, id uuid.UUID, placeID string) (bool, error)

	// SyncStatus reports per-city OSM counts for the given country.
	SyncStatus(ctx context.Context, countryCode string) ([]domain.POISyncStatus, error)
}
