package repository

import (
	"context"

	"naklos/internal/domain"
)

// RequestListFilter narrows List results. Nil fields are ignored.
type RequestListFilter struct {
	Status   *domain.RequestStatus
	DriverID *string
}

// RequestRepository defines the persistence operations for truck
// assignment requests.
type RequestRepository interface {
	// Create persists a new request.
	Create(ctx context.Context, req *domain.TruckAssignmentRequest) error

	// GetByID retrieves a request by ID.
	GetByID(ctx context.Context, id string) (*domain.TruckAssignmentRequest, error)

	// GetPendingByDriverID retrieves the driver's outstanding pending
	// request. Returns nil if none exists.
	GetPendingByDriverID(ctx context.Context, driverID string) (*domain.TruckAssignmentRequest, error)

	// List retrieves requests matching the filter.
	List(ctx context.Context, filter RequestListFilter) ([]*domain.TruckAssignmentRequest, error)

	// Update updates an existing request.
	Update(ctx context.Context, req *domain.TruckAssignmentRequest) error
}
