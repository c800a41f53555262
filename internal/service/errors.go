package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTransition is returned when a command targets an entity
	// that is not in the required source state.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrDuplicateRequest is returned when a driver already has a pending
	// truck assignment request.
	ErrDuplicateRequest = errors.New("driver already has a pending request")

	// ErrNoAvailableTrucks is returned when assignment approval is
	// attempted with zero unassigned trucks in the fleet.
	ErrNoAvailableTrucks = errors.New("no unassigned trucks available")

	// ErrTruckUnavailable is returned when the chosen truck is already
	// paired with another driver.
	ErrTruckUnavailable = errors.New("truck is already assigned")

	// ErrDriverUnavailable is returned when the driver cannot take a trip
	// in their current status.
	ErrDriverUnavailable = errors.New("driver is not available")
)

// ValidationError reports required fields that are missing or malformed.
// It always names the specific fields so the caller can direct the user to
// fix exactly those.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError creates a ValidationError for the given field names.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// MixedClientError is returned when an invoice batch spans more than one
// client. TripID names the first trip whose client differs from the batch.
type MixedClientError struct {
	TripID string
}

func (e *MixedClientError) Error() string {
	return fmt.Sprintf("trip %s belongs to a different client", e.TripID)
}
