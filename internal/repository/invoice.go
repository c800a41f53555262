package repository

import (
	"context"

	"naklos/internal/domain"
)

// InvoiceListFilter narrows List results. Nil fields are ignored.
type InvoiceListFilter struct {
	Status   *domain.InvoiceStatus
	ClientID *string
}

// InvoiceRepository defines the persistence operations for invoices.
type InvoiceRepository interface {
	// Create persists a new invoice.
	Create(ctx context.Context, invoice *domain.Invoice) error

	// GetByID retrieves an invoice by ID.
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)

	// List retrieves invoices matching the filter.
	List(ctx context.Context, filter InvoiceListFilter) ([]*domain.Invoice, error)
}
