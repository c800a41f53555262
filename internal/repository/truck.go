package repository

import (
	"context"

	"naklos/internal/domain"
)

// TruckRepository defines the persistence operations for trucks.
type TruckRepository interface {
	// Create adds a new truck. Returns ErrDuplicate when the plate number
	// is already registered.
	Create(ctx context.Context, truck *domain.Truck) error

	// GetByID retrieves a truck by ID.
	GetByID(ctx context.Context, id string) (*domain.Truck, error)

	// GetAll retrieves all trucks.
	GetAll(ctx context.Context) ([]*domain.Truck, error)

	// GetUnassigned retrieves trucks with no paired driver.
	GetUnassigned(ctx context.Context) ([]*domain.Truck, error)

	// Update updates an existing truck.
	Update(ctx context.Context, truck *domain.Truck) error
}
