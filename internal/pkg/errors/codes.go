package errors

import "net/http"

var (
	ErrPOINotFound = New(
		"POI_NOT_FOUND",
		"POI not found",
		http.StatusNotFound,
	)

	ErrCityNotFound = New(
		"CITY_NOT_FOUND",
		"City not found",
		http.StatusNotFound,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidFlightParams = New(
		"INVALID_FLIGHT_PARAMS",
		"Invalid flight search parameters",
		http.StatusBadRequest,
	)

	ErrFlightRateLimited = New(
		"FLIGHT_API_RATE_LIMITED",
		"Flight API rate limit exceeded",
		http.StatusServiceUnavailable,
	)

	ErrFlightUpstream = New(
		"FLIGHT_API_ERROR",
		"Flight API request failed",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
