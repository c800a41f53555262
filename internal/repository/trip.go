package repository

import (
	"context"

	"naklos/internal/domain"
)

// TripListFilter narrows List results. Nil fields are ignored.
type TripListFilter struct {
	Status   *domain.TripStatus
	ClientID *string
	DriverID *string

	// Invoiceable selects trips that satisfy the ready-to-invoice
	// predicate: documents confirmed, not yet invoiced, and delivered or
	// approved.
	Invoiceable bool
}

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// List retrieves trips matching the filter.
	List(ctx context.Context, filter TripListFilter) ([]*domain.Trip, error)

	// Update updates an existing trip.
	Update(ctx context.Context, trip *domain.Trip) error
}
