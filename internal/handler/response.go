package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"naklos/internal/repository"
	"naklos/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	// Fields names the offending fields for validation failures.
	Fields []string `json:"fields,omitempty"`
	// TripID names the offending trip for mixed-client invoice batches.
	TripID string `json:"trip_id,omitempty"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	resp := ErrorResponse{Error: err.Error()}

	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		resp.Fields = vErr.Fields
	}
	var mErr *service.MixedClientError
	if errors.As(err, &mErr) {
		resp.TripID = mErr.TripID
	}

	c.JSON(code, resp)
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	var vErr *service.ValidationError
	var mErr *service.MixedClientError

	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.As(err, &vErr):
		return http.StatusBadRequest

	// Conflict errors
	case errors.As(err, &mErr),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrDuplicateRequest),
		errors.Is(err, service.ErrTruckUnavailable),
		errors.Is(err, service.ErrDriverUnavailable),
		errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict

	// Service unavailable
	case errors.Is(err, service.ErrNoAvailableTrucks):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}

const timeFormat = "2006-01-02T15:04:05Z07:00"

// formatTime renders t in RFC 3339, or empty for the zero value so
// omitempty drops the field.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeFormat)
}

// parseDate parses a date-only or RFC 3339 value. Empty input yields the
// zero time.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(timeFormat, s)
}
