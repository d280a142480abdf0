package usecase

import (
	"fmt"
	"net/url"
	"time"

	"github.com/trip-planner-backend/internal/domain"
)

// DeeplinkBuilder produces Aviasales search URLs, optionally wrapped in a
// Travelpayouts affiliate redirect when a marker is configured.
type DeeplinkBuilder struct {
	marker string
}

func NewDeeplinkBuilder(marker string) *DeeplinkBuilder {
	return &DeeplinkBuilder{marker: marker}
}

// Build returns the deeplink for the given search, or "" when the dates
// cannot be interpreted.
func (b *DeeplinkBuilder) Build(p domain.FlightSearchParams) string {
	searchURL := b.buildSearchURL(p)
	if searchURL == "" || b.marker == "" {
		return searchURL
	}

	q := url.Values{}
	q.Set("marker", b.marker)
	q.Set("p", "4114")
	q.Set("u", searchURL)
	return "https://tp.media/r?" + q.Encode()
}

// buildSearchURL renders the compact Aviasales route token:
// {origin}{DDMM}{destination}[{DDMM}]{adults}.
func (b *DeeplinkBuilder) buildSearchURL(p domain.FlightSearchParams) string {
	depart, ok := toDDMM(p.DepartureDate)
	if !ok {
		return ""
	}

	token := p.Origin + depart + p.Destination
	if p.ReturnDate != "" {
		ret, ok := toDDMM(p.ReturnDate)
		if !ok {
			return ""
		}
		token += ret
	}
	token += fmt.Sprintf("%d", p.Adults)

	return "https://www.aviasales.com/?params=" + token
}

func toDDMM(date string) (string, bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%02d%02d", t.Day(), int(t.Month())), true
}
