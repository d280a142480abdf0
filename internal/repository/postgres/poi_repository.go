package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/trip-planner-backend/internal/domain"
	"github.com/trip-planner-backend/internal/domain/repository"
	"github.com/trip-planner-backend/internal/pkg/errors"
	"go.uber.org/zap"
)

// defaultUpsertBatchSize is the chunk size of one INSERT statement when no
// batch size is configured; each chunk is its own transaction, so a failed
// pass can be rerun idempotently.
const defaultUpsertBatchSize = 500

// paramsPerRow is the number of bind parameters one POI row consumes.
const paramsPerRow = 16

type poiRepository struct {
	db        *sqlx.DB
	logger    *zap.Logger
	batchSize int
}

func NewPOIRepository(db *DB, batchSize int) repository.POIRepository {
	if batchSize <= 0 {
		batchSize = defaultUpsertBatchSize
	}
	return &poiRepository{
		db:        db.DB,
		logger:    db.logger,
		batchSize: batchSize,
	}
}

// UpsertBatch writes records in chunks of the configured batch size. The
// conflict target is the partial unique index on (source, source_id); a
// conflicting row has all mutable fields overwritten, is reactivated and
// gets its last_synced_at advanced to syncedAt.
func (r *poiRepository) UpsertBatch(
	ctx context.Context,
	pois []domain.POIUpsert,
	syncedAt time.Time,
) (int64, error) {
	if len(pois) == 0 {
		return 0, nil
	}

	var upserted int64
	for start := 0; start < len(pois); start += r.batchSize {
		end := start + r.batchSize
		if end > len(pois) {
			end = len(pois)
		}
		chunk := pois[start:end]

		affected, err := r.upsertChunk(ctx, chunk, syncedAt)
		if err != nil {
			r.logger.Error("Failed to upsert POI chunk",
				zap.Int("offset", start),
				zap.Int("size", len(chunk)),
				zap.Error(err))
			return upserted, fmt.Errorf("upsert chunk at offset %d: %w", start, err)
		}
		upserted += affected
	}

	return upserted, nil
}

func (r *poiRepository) upsertChunk(
	ctx context.Context,
	chunk []domain.POIUpsert,
	syncedAt time.Time,
) (int64, error) {
	query := buildUpsertStatement(len(chunk))
	args := upsertArgs(chunk, syncedAt)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return affected, nil
}

// buildUpsertStatement renders the multi-row INSERT ... ON CONFLICT
// statement for n rows.
func buildUpsertStatement(n int) string {
	placeholders := make([]string, 0, n)
	for i := 0; i < n; i++ {
		off := i * paramsPerRow
		placeholders = append(placeholders, fmt.Sprintf(
			"($%d, $%d, $%d, ST_SetSRID(ST_MakePoint($%d, $%d), 4326)::geography, "+
				"$%d::pois_category_enum, $%d, $%d, $%d::text[], $%d::pois_source_enum, "+
				"$%d, $%d, $%d, $%d::jsonb, $%d, $%d)",
			off+1, off+2, off+3, off+4, off+5, off+6, off+7, off+8,
			off+9, off+10, off+11, off+12, off+13, off+14, off+15, off+16,
		))
	}

	return fmt.Sprintf(`
		INSERT INTO pois (
			city_id, name, name_local, location, category, sub_category,
			source_id, tags, source, locale, address,
			last_synced_at, opening_hours, website, phone
		)
		VALUES %s
		ON CONFLICT (source, source_id) WHERE source_id IS NOT NULL
		DO UPDATE SET
			name = EXCLUDED.name,
			name_local = EXCLUDED.name_local,
			location = EXCLUDED.location,
			category = EXCLUDED.category,
			sub_category = EXCLUDED.sub_category,
			address = EXCLUDED.address,
			opening_hours = EXCLUDED.opening_hours,
			website = EXCLUDED.website,
			phone = EXCLUDED.phone,
			tags = EXCLUDED.tags,
			is_active = true,
			last_synced_at = EXCLUDED.last_synced_at,
			updated_at = NOW()
	`, strings.Join(placeholders, ",\n\t\t       "))
}

// upsertArgs flattens chunk into the bind-parameter list matching
// buildUpsertStatement's placeholder order.
func upsertArgs(chunk []domain.POIUpsert, syncedAt time.Time) []interface{} {
	args := make([]interface{}, 0, len(chunk)*paramsPerRow)
	for _, poi := range chunk {
		args = append(args,
			poi.CityID,             //  1 city_id
			poi.Name,               //  2 name
			poi.NameLocal,          //  3 name_local
			poi.Lon,                //  4 ST_MakePoint(lng, lat)
			poi.Lat,                //  5
			poi.Category,           //  6 category
			poi.SubCategory,        //  7 sub_category
			poi.SourceID,           //  8 source_id
			pq.Array(poi.Tags),     //  9 tags
			domain.SourceOSM,       // 10 source
			poi.Locale,             // 11 locale
			poi.Address,            // 12 address
			syncedAt,               // 13 last_synced_at
			poi.OpeningHours,       // 14 opening_hours
			poi.Website,            // 15 website
			poi.Phone,              // 16 phone
		)
	}
	return args
}

// DeactivateStale runs after all of a city's chunks are written, so rows
// touched by the current pass are excluded by their advanced timestamp.
func (r *poiRepository) DeactivateStale(
	ctx context.Context,
	cityID uuid.UUID,
	syncStartedAt time.Time,
) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE pois
		SET is_active = false, updated_at = NOW()
		WHERE city_id = $1
		  AND source = 'osm'
		  AND last_synced_at < $2
		  AND is_active = true
	`, cityID, syncStartedAt)
	if err != nil {
		r.logger.Error("Failed to deactivate stale POIs",
			zap.String("city_id", cityID.String()),
			zap.Error(err))
		return 0, fmt.Errorf("deactivate stale pois: %w", err)
	}

	return result.RowsAffected()
}

// SetGooglePlaceID writes the place id only when none is set yet. The
// conditional UPDATE makes the write-once check race-free; a zero row
// count is disambiguated into not-found vs already-set afterwards.
func (r *poiRepository) SetGooglePlaceID(
	ctx context.Context,
	id uuid.UUID,
	placeID string,
) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE pois
		SET google_place_id = $2, updated_at = NOW()
		WHERE id = $1 AND google_place_id IS NULL
	`, id, placeID)
	if err != nil {
		r.logger.Error("Failed to set google place id",
			zap.String("id", id.String()),
			zap.Error(err))
		return false, errors.ErrDatabaseError
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.ErrDatabaseError
	}
	if affected > 0 {
		return true, nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pois WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		r.logger.Error("Failed to check POI existence",
			zap.String("id", id.String()),
			zap.Error(err))
		return false, errors.ErrDatabaseError
	}
	if !exists {
		return false, errors.ErrPOINotFound
	}

	// Row exists but already carries a place id - no-op, not an error.
	return false, nil
}

func (r *poiRepository) SyncStatus(
	ctx context.Context,
	countryCode string,
) ([]domain.POISyncStatus, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			c.name_en,
			COUNT(p.id) AS total,
			COUNT(p.id) FILTER (WHERE p.is_active) AS active,
			COUNT(p.id) FILTER (WHERE NOT p.is_active) AS inactive,
			COUNT(p.id) FILTER (WHERE p.google_place_id IS NOT NULL) AS with_place_id,
			MAX(p.last_synced_at) AS last_synced
		FROM cities c
		LEFT JOIN pois p ON c.id = p.city_id AND p.source = 'osm'
		WHERE c.country_code = $1
		GROUP BY c.name_en
		ORDER BY c.name_en
	`, countryCode)
	if err != nil {
		r.logger.Error("Failed to query sync status", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var statuses []domain.POISyncStatus
	for rows.Next() {
		var s domain.POISyncStatus
		if err := rows.Scan(
			&s.CityNameEn, &s.Total, &s.Active, &s.Inactive,
			&s.WithPlaceID, &s.LastSynced,
		); err != nil {
			r.logger.Error("Failed to scan sync status row", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError
	}

	return statuses, nil
}
