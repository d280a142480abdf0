package repository

import (
	"context"

	"github.com/trip-planner-backend/internal/domain"
)

// FlightRepository is the priced-search surface of the flight GDS client.
type FlightRepository interface {
	// SearchOffers runs one priced search and returns the raw upstream
	// payload. Implementations own token lifecycle and error mapping.
	SearchOffers(ctx context.Context, p domain.FlightSearchParams) (*domain.AmadeusFlightOffersResponse, error)
}
