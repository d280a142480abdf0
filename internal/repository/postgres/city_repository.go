package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/trip-planner-backend/internal/domain"
	"github.com/trip-planner-backend/internal/domain/repository"
	"github.com/trip-planner-backend/internal/pkg/errors"
	"go.uber.org/zap"
)

type cityRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCityRepository(db *DB) repository.CityRepository {
	return &cityRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *cityRepository) ListActive(ctx context.Context, countryCode string) ([]domain.City, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name_ko, name_en, name_local, country_code,
		       timezone, iata_codes, currency_code, is_active
		FROM cities
		WHERE country_code = $1 AND is_active = true
		ORDER BY name_en
	`, countryCode)
	if err != nil {
		r.logger.Error("Failed to list active cities",
			zap.String("country_code", countryCode),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var cities []domain.City
	for rows.Next() {
		var city domain.City
		if err := rows.Scan(
			&city.ID, &city.NameKo, &city.NameEn, &city.NameLocal,
			&city.CountryCode, &city.Timezone, pq.Array(&city.IataCodes),
			&city.CurrencyCode, &city.IsActive,
		); err != nil {
			r.logger.Error("Failed to scan city row", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError
	}

	return cities, nil
}
