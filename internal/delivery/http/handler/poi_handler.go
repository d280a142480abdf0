package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trip-planner-backend/internal/pkg/errors"
	"github.com/trip-planner-backend/internal/pkg/utils"
	"github.com/trip-planner-backend/internal/pkg/validator"
	"github.com/trip-planner-backend/internal/usecase"
	"github.com/trip-planner-backend/internal/usecase/dto"
	"go.uber.org/zap"
)

// POIHandler - handler for POI endpoints
type POIHandler struct {
	poiUC  *usecase.POIUseCase
	logger *zap.Logger
}

func NewPOIHandler(poiUC *usecase.POIUseCase, logger *zap.Logger) *POIHandler {
	return &POIHandler{
		poiUC:  poiUC,
		logger: logger,
	}
}

// SyncStatus godoc
// @Summary POI sync status per city
// @Description Returns per-city OSM POI counters: total, active, inactive, linked to an external place, and the last sync time.
// @Tags POI
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.POISyncStatus}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/pois/status [get]
func (h *POIHandler) SyncStatus(c *fiber.Ctx) error {
	status, err := h.poiUC.SyncStatus(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, status, &utils.Meta{Total: len(status)})
}

// PatchGooglePlaceID godoc
// @Summary Link a POI to its Google place record
// @Description Stores the Google place ID on a POI once. A POI that already has one is left untouched and reports updated=false.
// @Tags POI
// @Accept json
// @Produce json
// @Param id path string true "POI ID (UUID)"
// @Param request body dto.PatchGooglePlaceIDRequest true "Place ID to store"
// @Success 200 {object} utils.SuccessResponse{data=dto.PatchGooglePlaceIDResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/pois/{id}/google-place-id [patch]
func (h *POIHandler) PatchGooglePlaceID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": "id must be a UUID"}))
	}

	var req dto.PatchGooglePlaceIDRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": "invalid request body"}))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": err.Error()}))
	}

	updated, err := h.poiUC.PatchGooglePlaceID(c.Context(), id, req.GooglePlaceID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.PatchGooglePlaceIDResponse{Updated: updated}, nil)
}
