package repository

import (
	"context"

	"github.com/trip-planner-backend/internal/domain"
)

// CityRepository reads destination cities.
type CityRepository interface {
	// ListActive returns active cities of a country ordered by English name.
	ListActive(ctx context.Context, countryCode string) ([]domain.City, error)
}
