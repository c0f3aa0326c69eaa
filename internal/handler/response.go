package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hail/internal/geo"
	"hail/internal/repository"
	"hail/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository/provider errors to HTTP
// status codes.
func mapErrorToHTTPStatus(err error) int {
	var providerErr *geo.ProviderError

	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, geo.ErrAddressNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidRiderID),
		errors.Is(err, service.ErrInvalidRideID),
		errors.Is(err, service.ErrInvalidCaptainID),
		errors.Is(err, service.ErrMissingPickup),
		errors.Is(err, service.ErrMissingDestination),
		errors.Is(err, service.ErrInvalidRideClass),
		errors.Is(err, service.ErrInvalidLocation):
		return http.StatusBadRequest

	// Authorization errors
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrCaptainNotAssigned),
		errors.Is(err, service.ErrNotRideOwner):
		return http.StatusUnauthorized

	// OTP mismatch is forbidden, not a validation failure
	case errors.Is(err, service.ErrOTPMismatch):
		return http.StatusForbidden

	// Lifecycle conflicts
	case errors.Is(err, service.ErrRideNotPending),
		errors.Is(err, service.ErrRideNotConfirmed),
		errors.Is(err, service.ErrRideNotStarted),
		errors.Is(err, service.ErrRideNotCancellable),
		errors.Is(err, service.ErrRideBeingConfirmed),
		errors.Is(err, service.ErrCaptainHasActiveRide),
		errors.Is(err, service.ErrPhoneAlreadyRegistered):
		return http.StatusConflict

	// Upstream geocoding/routing failures
	case errors.As(err, &providerErr):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
