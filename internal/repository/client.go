package repository

import (
	"context"

	"naklos/internal/domain"
)

// ClientRepository defines the persistence operations for clients.
type ClientRepository interface {
	// Create adds a new client.
	Create(ctx context.Context, client *domain.Client) error

	// GetByID retrieves a client by ID.
	GetByID(ctx context.Context, id string) (*domain.Client, error)

	// GetAll retrieves all clients.
	GetAll(ctx context.Context) ([]*domain.Client, error)
}
