package dto

import (
	"strings"

	"github.com/trip-planner-backend/internal/domain"
)

// SearchFlightsRequest - priced search for one route
type SearchFlightsRequest struct {
	Origin        string `query:"origin" validate:"required,len=3,alpha"`
	Destination   string `query:"destination" validate:"required,len=3,alpha"`
	DepartureDate string `query:"departure_date" validate:"required,datetime=2006-01-02"`
	ReturnDate    string `query:"return_date" validate:"omitempty,datetime=2006-01-02"`
	Adults        int    `query:"adults" validate:"omitempty,min=1,max=9"`
	NonStop       bool   `query:"non_stop"`
	Max           int    `query:"max" validate:"omitempty,min=1,max=50"`
}

func (r *SearchFlightsRequest) ToParams() domain.FlightSearchParams {
	return domain.FlightSearchParams{
		Origin:        strings.ToUpper(r.Origin),
		Destination:   strings.ToUpper(r.Destination),
		DepartureDate: r.DepartureDate,
		ReturnDate:    r.ReturnDate,
		Adults:        r.Adults,
		NonStop:       r.NonStop,
		Max:           r.Max,
	}
}

// CheapestCitiesRequest - multi-city price comparison
type CheapestCitiesRequest struct {
	Origin        string `query:"origin" validate:"omitempty,len=3,alpha"`
	DepartureDate string `query:"departure_date" validate:"required,datetime=2006-01-02"`
	ReturnDate    string `query:"return_date" validate:"omitempty,datetime=2006-01-02"`
	Adults        int    `query:"adults" validate:"omitempty,min=1,max=9"`
	MaxPerCity    int    `query:"max_per_city" validate:"omitempty,min=1,max=10"`
}

func (r *CheapestCitiesRequest) ToParams() domain.CheapestCitiesParams {
	return domain.CheapestCitiesParams{
		Origin:        strings.ToUpper(r.Origin),
		DepartureDate: r.DepartureDate,
		ReturnDate:    r.ReturnDate,
		Adults:        r.Adults,
		MaxPerCity:    r.MaxPerCity,
	}
}
