package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trip-planner-backend/internal/pkg/errors"
	"github.com/trip-planner-backend/internal/pkg/utils"
	"github.com/trip-planner-backend/internal/pkg/validator"
	"github.com/trip-planner-backend/internal/usecase"
	"github.com/trip-planner-backend/internal/usecase/dto"
	"go.uber.org/zap"
)

// FlightHandler - handler for flight search endpoints
type FlightHandler struct {
	flightUC *usecase.FlightUseCase
	logger   *zap.Logger
}

func NewFlightHandler(flightUC *usecase.FlightUseCase, logger *zap.Logger) *FlightHandler {
	return &FlightHandler{
		flightUC: flightUC,
		logger:   logger,
	}
}

// SearchFlights godoc
// @Summary Search flight offers for one route
// @Description Runs a priced flight search between two airports. Identical searches within the cache window are served from cache.
// @Tags Flights
// @Accept json
// @Produce json
// @Param origin query string true "Origin IATA code (e.g. ICN)"
// @Param destination query string true "Destination IATA code (e.g. NRT)"
// @Param departure_date query string true "Departure date (YYYY-MM-DD)"
// @Param return_date query string false "Return date (YYYY-MM-DD), omit for one-way"
// @Param adults query int false "Passenger count" default(1)
// @Param non_stop query bool false "Direct flights only" default(false)
// @Param max query int false "Maximum offers" default(5)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.FlightOffer}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/flights/search [get]
func (h *FlightHandler) SearchFlights(c *fiber.Ctx) error {
	var req dto.SearchFlightsRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": err.Error()}))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": err.Error()}))
	}

	offers, err := h.flightUC.SearchFlights(c.Context(), req.ToParams())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, offers, &utils.Meta{Total: len(offers)})
}

// CheapestCities godoc
// @Summary Compare flight prices across destination cities
// @Description Searches every active destination city in parallel and ranks them ascending by the cheapest found offer. Cities whose searches all failed are listed last without a price.
// @Tags Flights
// @Accept json
// @Produce json
// @Param origin query string false "Origin IATA code" default(ICN)
// @Param departure_date query string true "Departure date (YYYY-MM-DD)"
// @Param return_date query string false "Return date (YYYY-MM-DD), omit for one-way"
// @Param adults query int false "Passenger count" default(1)
// @Param max_per_city query int false "Offers retained per city" default(3)
// @Success 200 {object} utils.SuccessResponse{data=domain.CheapestCitiesResult}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/flights/cheapest-cities [get]
func (h *FlightHandler) CheapestCities(c *fiber.Ctx) error {
	var req dto.CheapestCitiesRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": err.Error()}))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": err.Error()}))
	}

	result, err := h.flightUC.CheapestCities(c.Context(), req.ToParams())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Cities)})
}
