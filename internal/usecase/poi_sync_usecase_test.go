package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trip-planner-backend/internal/config"
	"github.com/trip-planner-backend/internal/domain"
	"github.com/trip-planner-backend/internal/usecase"
)

// MockCityRepository is a mock of CityRepository
type MockCityRepository struct {
	mock.Mock
}

func (m *MockCityRepository) ListActive(ctx context.Context, countryCode string) ([]domain.City, error) {
	args := m.Called(ctx, countryCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.City), args.Error(1)
}

// MockPOIRepository is a mock of POIRepository
type MockPOIRepository struct {
	mock.Mock

	// calls records the order of write operations.
	calls []string
}

func (m *MockPOIRepository) UpsertBatch(ctx context.Context, pois []domain.POIUpsert, syncedAt time.Time) (int64, error) {
	m.calls = append(m.calls, "upsert")
	args := m.Called(ctx, pois, syncedAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPOIRepository) DeactivateStale(ctx context.Context, cityID uuid.UUID, syncStartedAt time.Time) (int64, error) {
	m.calls = append(m.calls, "deactivate")
	args := m.Called(ctx, cityID, syncStartedAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPOIRepository) SetGooglePlaceID(ctx context.Context, id uuid.UUID, placeID string) (bool, error) {
	args := m.Called(ctx, id, placeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPOIRepository) SyncStatus(ctx context.Context, countryCode string) ([]domain.POISyncStatus, error) {
	args := m.Called(ctx, countryCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.POISyncStatus), args.Error(1)
}

// MockOverpassFetcher is a mock of OverpassFetcher
type MockOverpassFetcher struct {
	mock.Mock
}

func (m *MockOverpassFetcher) FetchByBoundingBox(ctx context.Context, region, bbox string) ([]domain.OverpassElement, error) {
	args := m.Called(ctx, region, bbox)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OverpassElement), args.Error(1)
}

func syncConfig() *config.SyncConfig {
	return &config.SyncConfig{
		CountryCode:   "JP",
		Locale:        "ko",
		CourtesyDelay: 0,
		BatchSize:     500,
	}
}

func cafeElement(id int64, name string) domain.OverpassElement {
	return node(id, map[string]string{"amenity": "cafe", "name": name})
}

func TestSyncUseCase_SyncAll(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("aggregates counters across cities", func(t *testing.T) {
		tokyo := domain.City{ID: uuid.New(), NameEn: "Tokyo"}
		osaka := domain.City{ID: uuid.New(), NameEn: "Osaka"}

		cityRepo := &MockCityRepository{}
		poiRepo := &MockPOIRepository{}
		fetcher := &MockOverpassFetcher{}

		cityRepo.On("ListActive", ctx, "JP").Return([]domain.City{tokyo, osaka}, nil)
		fetcher.On("FetchByBoundingBox", ctx, "Tokyo", "35.55,139.50,35.82,139.92").
			Return([]domain.OverpassElement{cafeElement(1, "A"), cafeElement(2, "B")}, nil)
		fetcher.On("FetchByBoundingBox", ctx, "Osaka", "34.55,135.35,34.80,135.65").
			Return([]domain.OverpassElement{cafeElement(3, "C")}, nil)
		poiRepo.On("UpsertBatch", ctx, mock.Anything, mock.Anything).Return(int64(2), nil).Once()
		poiRepo.On("UpsertBatch", ctx, mock.Anything, mock.Anything).Return(int64(1), nil).Once()
		poiRepo.On("DeactivateStale", ctx, tokyo.ID, mock.Anything).Return(int64(5), nil)
		poiRepo.On("DeactivateStale", ctx, osaka.ID, mock.Anything).Return(int64(0), nil)

		uc := usecase.NewSyncUseCase(cityRepo, poiRepo, fetcher, syncConfig(), logger)
		summary, err := uc.SyncAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(3), summary.Upserted)
		assert.Equal(t, int64(5), summary.Deactivated)
		require.Len(t, summary.Cities, 2)
		assert.Equal(t, "Tokyo", summary.Cities[0].CityNameEn)
		assert.Equal(t, int64(2), summary.Cities[0].Upserted)
	})

	t.Run("one timestamp anchors the whole run", func(t *testing.T) {
		tokyo := domain.City{ID: uuid.New(), NameEn: "Tokyo"}
		osaka := domain.City{ID: uuid.New(), NameEn: "Osaka"}

		cityRepo := &MockCityRepository{}
		poiRepo := &MockPOIRepository{}
		fetcher := &MockOverpassFetcher{}

		var stamps []time.Time
		capture := func(args mock.Arguments) {
			stamps = append(stamps, args.Get(2).(time.Time))
		}

		cityRepo.On("ListActive", ctx, "JP").Return([]domain.City{tokyo, osaka}, nil)
		fetcher.On("FetchByBoundingBox", ctx, mock.Anything, mock.Anything).
			Return([]domain.OverpassElement{cafeElement(1, "A")}, nil)
		poiRepo.On("UpsertBatch", ctx, mock.Anything, mock.Anything).
			Return(int64(1), nil).Run(capture)
		poiRepo.On("DeactivateStale", ctx, mock.Anything, mock.Anything).
			Return(int64(0), nil).Run(capture)

		uc := usecase.NewSyncUseCase(cityRepo, poiRepo, fetcher, syncConfig(), logger)
		summary, err := uc.SyncAll(ctx)

		require.NoError(t, err)
		require.Len(t, stamps, 4)
		assert.Equal(t, summary.StartedAt, stamps[0])
		for _, stamp := range stamps[1:] {
			assert.Equal(t, stamps[0], stamp, "every city shares the run's start timestamp")
		}
	})

	t.Run("deactivation runs after the upsert", func(t *testing.T) {
		tokyo := domain.City{ID: uuid.New(), NameEn: "Tokyo"}

		cityRepo := &MockCityRepository{}
		poiRepo := &MockPOIRepository{}
		fetcher := &MockOverpassFetcher{}

		cityRepo.On("ListActive", ctx, "JP").Return([]domain.City{tokyo}, nil)
		fetcher.On("FetchByBoundingBox", ctx, "Tokyo", mock.Anything).
			Return([]domain.OverpassElement{cafeElement(1, "A")}, nil)
		poiRepo.On("UpsertBatch", ctx, mock.Anything, mock.Anything).Return(int64(1), nil)
		poiRepo.On("DeactivateStale", ctx, tokyo.ID, mock.Anything).Return(int64(0), nil)

		uc := usecase.NewSyncUseCase(cityRepo, poiRepo, fetcher, syncConfig(), logger)
		_, err := uc.SyncAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"upsert", "deactivate"}, poiRepo.calls)
	})

	t.Run("skips cities without a bounding box", func(t *testing.T) {
		unknown := domain.City{ID: uuid.New(), NameEn: "Nagoya"}

		cityRepo := &MockCityRepository{}
		poiRepo := &MockPOIRepository{}
		fetcher := &MockOverpassFetcher{}

		cityRepo.On("ListActive", ctx, "JP").Return([]domain.City{unknown}, nil)

		uc := usecase.NewSyncUseCase(cityRepo, poiRepo, fetcher, syncConfig(), logger)
		summary, err := uc.SyncAll(ctx)

		require.NoError(t, err)
		require.Len(t, summary.Cities, 1)
		assert.True(t, summary.Cities[0].Skipped)
		fetcher.AssertNotCalled(t, "FetchByBoundingBox", mock.Anything, mock.Anything, mock.Anything)
		poiRepo.AssertNotCalled(t, "DeactivateStale", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("aborts the run on a fetch failure", func(t *testing.T) {
		tokyo := domain.City{ID: uuid.New(), NameEn: "Tokyo"}
		osaka := domain.City{ID: uuid.New(), NameEn: "Osaka"}

		cityRepo := &MockCityRepository{}
		poiRepo := &MockPOIRepository{}
		fetcher := &MockOverpassFetcher{}

		cityRepo.On("ListActive", ctx, "JP").Return([]domain.City{tokyo, osaka}, nil)
		fetcher.On("FetchByBoundingBox", ctx, "Tokyo", mock.Anything).
			Return(nil, errors.New("overpass down"))

		uc := usecase.NewSyncUseCase(cityRepo, poiRepo, fetcher, syncConfig(), logger)
		_, err := uc.SyncAll(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Tokyo")
		fetcher.AssertNotCalled(t, "FetchByBoundingBox", ctx, "Osaka", mock.Anything)
		poiRepo.AssertNotCalled(t, "UpsertBatch", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSyncUseCase_SyncCity(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("matches the city case-insensitively", func(t *testing.T) {
		kyoto := domain.City{ID: uuid.New(), NameEn: "Kyoto"}

		cityRepo := &MockCityRepository{}
		poiRepo := &MockPOIRepository{}
		fetcher := &MockOverpassFetcher{}

		cityRepo.On("ListActive", ctx, "JP").Return([]domain.City{kyoto}, nil)
		fetcher.On("FetchByBoundingBox", ctx, "Kyoto", "34.90,135.65,35.10,135.85").
			Return([]domain.OverpassElement{}, nil)
		poiRepo.On("UpsertBatch", ctx, mock.Anything, mock.Anything).Return(int64(0), nil)
		poiRepo.On("DeactivateStale", ctx, kyoto.ID, mock.Anything).Return(int64(0), nil)

		uc := usecase.NewSyncUseCase(cityRepo, poiRepo, fetcher, syncConfig(), logger)
		summary, err := uc.SyncCity(ctx, "kyoto")

		require.NoError(t, err)
		require.Len(t, summary.Cities, 1)
		assert.Equal(t, "Kyoto", summary.Cities[0].CityNameEn)
	})

	t.Run("lists available cities on an unknown name", func(t *testing.T) {
		cityRepo := &MockCityRepository{}
		cityRepo.On("ListActive", ctx, "JP").Return([]domain.City{
			{NameEn: "Tokyo"}, {NameEn: "Osaka"},
		}, nil)

		uc := usecase.NewSyncUseCase(cityRepo, &MockPOIRepository{}, &MockOverpassFetcher{}, syncConfig(), logger)
		_, err := uc.SyncCity(ctx, "Paris")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Paris")
		assert.Contains(t, err.Error(), "Osaka, Tokyo")
	})
}
