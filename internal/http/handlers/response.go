// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response utilities shared by every endpoint: the
// structured error envelope, the service-error translator, and small helpers
// for success responses. All failures go through fail() so clients always
// receive the same shape:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "route not found"
//	}
//
// Validation failures additionally carry a fields map keyed by the offending
// input field.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkosteva/go-airport-backend/internal/http/middleware"
	"github.com/dkosteva/go-airport-backend/internal/services"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"resource not found"`
	// Field-level validation detail, present only for validation_failed
	Fields map[string]string `json:"fields,omitempty"`
}

// fail aborts the request with a structured error. Server errors (>= 500)
// are logged through the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	failFields(c, status, code, msg, nil)
}

// failFields is fail with an optional field-level detail map.
func failFields(c *gin.Context, status int, code, msg string, fields map[string]string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
		Fields:    fields,
	}

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail(), used by router fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// svcFail translates a service-layer error into the HTTP envelope:
// ValidationError -> 400 validation_failed with fields, ErrSeatTaken -> 409
// conflict, the not-found sentinels -> 404, anything else -> 500.
func svcFail(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		failFields(c, http.StatusBadRequest, ErrCodeValidation, "validation failed", verr.Fields)
	case errors.Is(err, services.ErrSeatTaken):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	case isNotFound(err):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// isNotFound matches every service not-found sentinel.
func isNotFound(err error) bool {
	for _, sentinel := range []error{
		services.ErrCountryNotFound, services.ErrCityNotFound,
		services.ErrAirportNotFound, services.ErrAirplaneTypeNotFound,
		services.ErrAirplaneNotFound, services.ErrCrewNotFound,
		services.ErrRouteNotFound, services.ErrFlightNotFound,
		services.ErrOrderNotFound, services.ErrChatNotFound,
		services.ErrMessageNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
