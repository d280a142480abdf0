package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/trip-planner-backend/internal/config"
	"github.com/trip-planner-backend/internal/domain"
	"github.com/trip-planner-backend/internal/domain/repository"
	"go.uber.org/zap"
)

// Search defaults applied when the caller leaves them unset.
const (
	defaultAdults     = 1
	defaultMaxOffers  = 5
	defaultOrigin     = "ICN"
	defaultMaxPerCity = 3
)

// FlightUseCase serves priced flight searches with a short result cache and
// a multi-city comparison that fans out over every destination city.
type FlightUseCase struct {
	flightRepo  repository.FlightRepository
	cityRepo    repository.CityRepository
	cacheRepo   repository.CacheRepository
	deeplink    *DeeplinkBuilder
	logger      *zap.Logger
	cacheTTL    time.Duration
	countryCode string
}

func NewFlightUseCase(
	flightRepo repository.FlightRepository,
	cityRepo repository.CityRepository,
	cacheRepo repository.CacheRepository,
	deeplink *DeeplinkBuilder,
	cacheCfg *config.CacheConfig,
	syncCfg *config.SyncConfig,
	logger *zap.Logger,
) *FlightUseCase {
	return &FlightUseCase{
		flightRepo:  flightRepo,
		cityRepo:    cityRepo,
		cacheRepo:   cacheRepo,
		deeplink:    deeplink,
		logger:      logger,
		cacheTTL:    cacheCfg.FlightsCacheTTL,
		countryCode: syncCfg.CountryCode,
	}
}

// flightCacheKey is stable across equal parameter tuples; an empty return
// date is encoded as "ow" so one-way and round-trip never collide.
func flightCacheKey(p domain.FlightSearchParams) string {
	ret := p.ReturnDate
	if ret == "" {
		ret = "ow"
	}
	return fmt.Sprintf("flights:%s:%s:%s:%s:%d:%t:%d",
		p.Origin, p.Destination, p.DepartureDate, ret, p.Adults, p.NonStop, p.Max)
}

// SearchFlights returns display-ready offers for one route, served from
// cache when a recent identical search exists.
func (uc *FlightUseCase) SearchFlights(ctx context.Context, p domain.FlightSearchParams) ([]domain.FlightOffer, error) {
	if p.Adults == 0 {
		p.Adults = defaultAdults
	}
	if p.Max == 0 {
		p.Max = defaultMaxOffers
	}

	key := flightCacheKey(p)
	if cached, err := uc.cacheRepo.Get(ctx, key); err != nil {
		uc.logger.Warn("Flight cache read failed", zap.String("key", key), zap.Error(err))
	} else if cached != nil {
		var offers []domain.FlightOffer
		if err := json.Unmarshal(cached, &offers); err == nil {
			return offers, nil
		}
		uc.logger.Warn("Discarding corrupt flight cache entry", zap.String("key", key))
	}

	resp, err := uc.flightRepo.SearchOffers(ctx, p)
	if err != nil {
		return nil, err
	}

	offers := uc.transformOffers(resp, p)

	if data, err := json.Marshal(offers); err == nil {
		if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Flight cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return offers, nil
}

// transformOffers flattens the upstream payload into display offers,
// resolving carrier names through the response dictionary when present.
func (uc *FlightUseCase) transformOffers(resp *domain.AmadeusFlightOffersResponse, p domain.FlightSearchParams) []domain.FlightOffer {
	var carriers map[string]string
	if resp.Dictionaries != nil {
		carriers = resp.Dictionaries.Carriers
	}

	deeplink := uc.deeplink.Build(p)

	offers := make([]domain.FlightOffer, 0, len(resp.Data))
	for _, raw := range resp.Data {
		price, err := strconv.ParseFloat(raw.Price.Total, 64)
		if err != nil {
			uc.logger.Warn("Skipping offer with unparsable price",
				zap.String("offer_id", raw.ID),
				zap.String("total", raw.Price.Total))
			continue
		}

		offer := domain.FlightOffer{
			Currency:    raw.Price.Currency,
			TotalPrice:  price,
			Itineraries: make([]domain.FlightItinerary, 0, len(raw.Itineraries)),
			Deeplink:    deeplink,
		}

		// The offer's airlines are the validating carriers, not the
		// operating ones flying each segment.
		for _, code := range raw.ValidatingAirlineCodes {
			name := carriers[code]
			if name == "" {
				name = code
			}
			offer.Airlines = append(offer.Airlines, name)
		}

		for _, it := range raw.Itineraries {
			itinerary := domain.FlightItinerary{
				Duration: it.Duration,
				Segments: make([]domain.FlightSegment, 0, len(it.Segments)),
			}
			for _, seg := range it.Segments {
				itinerary.Segments = append(itinerary.Segments, domain.FlightSegment{
					DepartureAirport:  seg.Departure.IataCode,
					DepartureAt:       seg.Departure.At,
					DepartureTerminal: seg.Departure.Terminal,
					ArrivalAirport:    seg.Arrival.IataCode,
					ArrivalAt:         seg.Arrival.At,
					ArrivalTerminal:   seg.Arrival.Terminal,
					CarrierCode:       seg.CarrierCode,
					CarrierName:       carriers[seg.CarrierCode],
					FlightNumber:      seg.Number,
					Duration:          seg.Duration,
					NumberOfStops:     seg.NumberOfStops,
				})
			}
			offer.Itineraries = append(offer.Itineraries, itinerary)
		}

		offers = append(offers, offer)
	}

	return offers
}

// searchTask is one unique route search shared by every city that lists
// the same IATA code.
type searchTask struct {
	params domain.FlightSearchParams
	offers []domain.FlightOffer
	err    error
}

// CheapestCities searches every active destination city in parallel and
// ranks them by their cheapest found offer. Individual route failures are
// tolerated: the affected city simply reports no price.
func (uc *FlightUseCase) CheapestCities(ctx context.Context, p domain.CheapestCitiesParams) (*domain.CheapestCitiesResult, error) {
	if p.Origin == "" {
		p.Origin = defaultOrigin
	}
	if p.Adults == 0 {
		p.Adults = defaultAdults
	}
	if p.MaxPerCity == 0 {
		p.MaxPerCity = defaultMaxPerCity
	}

	cities, err := uc.cityRepo.ListActive(ctx, uc.countryCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}

	// Cities can share airports, so tasks are deduplicated by parameter
	// tuple and each unique route is searched exactly once.
	tasks := make(map[string]*searchTask)
	cityTasks := make([][]*searchTask, len(cities))

	for i, city := range cities {
		for _, iata := range city.IataCodes {
			params := domain.FlightSearchParams{
				Origin:        p.Origin,
				Destination:   iata,
				DepartureDate: p.DepartureDate,
				ReturnDate:    p.ReturnDate,
				Adults:        p.Adults,
				Max:           p.MaxPerCity,
			}
			key := flightCacheKey(params)
			task, ok := tasks[key]
			if !ok {
				task = &searchTask{params: params}
				tasks[key] = task
			}
			cityTasks[i] = append(cityTasks[i], task)
		}
	}

	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func(t *searchTask) {
			defer wg.Done()
			t.offers, t.err = uc.SearchFlights(ctx, t.params)
			if t.err != nil {
				uc.logger.Warn("Route search failed",
					zap.String("origin", t.params.Origin),
					zap.String("destination", t.params.Destination),
					zap.Error(t.err))
			}
		}(task)
	}
	wg.Wait()

	result := &domain.CheapestCitiesResult{
		Cities:        make([]domain.CityFlights, 0, len(cities)),
		Origin:        p.Origin,
		DepartureDate: p.DepartureDate,
		ReturnDate:    p.ReturnDate,
	}

	for i, city := range cities {
		cf := domain.CityFlights{
			CityNameEn: city.NameEn,
			CityNameKo: city.NameKo,
			IataCodes:  city.IataCodes,
			Offers:     []domain.FlightOffer{},
		}

		for _, task := range cityTasks[i] {
			if task.err != nil {
				continue
			}
			cf.Offers = append(cf.Offers, task.offers...)
		}

		sort.Slice(cf.Offers, func(a, b int) bool {
			return cf.Offers[a].TotalPrice < cf.Offers[b].TotalPrice
		})
		if len(cf.Offers) > p.MaxPerCity {
			cf.Offers = cf.Offers[:p.MaxPerCity]
		}
		if len(cf.Offers) > 0 {
			cheapest := cf.Offers[0].TotalPrice
			cf.CheapestPrice = &cheapest
		}

		result.Cities = append(result.Cities, cf)
	}

	// Priced cities first, ascending; unpriced cities keep their listing
	// order at the end.
	sort.SliceStable(result.Cities, func(a, b int) bool {
		pa, pb := result.Cities[a].CheapestPrice, result.Cities[b].CheapestPrice
		if pa == nil {
			return false
		}
		if pb == nil {
			return true
		}
		return *pa < *pb
	})

	return result, nil
}
