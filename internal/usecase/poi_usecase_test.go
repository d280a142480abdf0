package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trip-planner-backend/internal/domain"
	"github.com/trip-planner-backend/internal/pkg/errors"
	"github.com/trip-planner-backend/internal/usecase"
)

func TestPOIUseCase_PatchGooglePlaceID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("reports updated on the first link", func(t *testing.T) {
		poiRepo := &MockPOIRepository{}
		poiRepo.On("SetGooglePlaceID", ctx, id, "place-123").Return(true, nil)

		uc := usecase.NewPOIUseCase(poiRepo, "JP", zap.NewNop())
		updated, err := uc.PatchGooglePlaceID(ctx, id, "place-123")

		require.NoError(t, err)
		assert.True(t, updated)
		poiRepo.AssertExpectations(t)
	})

	t.Run("a repeated link is not updated and not an error", func(t *testing.T) {
		poiRepo := &MockPOIRepository{}
		poiRepo.On("SetGooglePlaceID", ctx, id, "place-123").Return(false, nil)

		uc := usecase.NewPOIUseCase(poiRepo, "JP", zap.NewNop())
		updated, err := uc.PatchGooglePlaceID(ctx, id, "place-123")

		require.NoError(t, err)
		assert.False(t, updated)
	})

	t.Run("not-found passes through", func(t *testing.T) {
		poiRepo := &MockPOIRepository{}
		poiRepo.On("SetGooglePlaceID", ctx, id, "place-123").Return(false, errors.ErrPOINotFound)

		uc := usecase.NewPOIUseCase(poiRepo, "JP", zap.NewNop())
		updated, err := uc.PatchGooglePlaceID(ctx, id, "place-123")

		assert.ErrorIs(t, err, errors.ErrPOINotFound)
		assert.False(t, updated)
	})
}

func TestPOIUseCase_SyncStatus(t *testing.T) {
	ctx := context.Background()

	poiRepo := &MockPOIRepository{}
	poiRepo.On("SyncStatus", ctx, "JP").Return([]domain.POISyncStatus{
		{CityNameEn: "Tokyo", Total: 120, Active: 110},
	}, nil)

	uc := usecase.NewPOIUseCase(poiRepo, "JP", zap.NewNop())
	statuses, err := uc.SyncStatus(ctx)

	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "Tokyo", statuses[0].CityNameEn)
	assert.Equal(t, int64(120), statuses[0].Total)
}
