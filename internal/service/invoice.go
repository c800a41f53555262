package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

// Invoices fall due this many days after issue.
const invoiceDueDays = 30

// InvoiceService builds invoices out of approved, uninvoiced trips. One
// invoice covers exactly one client; the builder rejects mixed batches and
// flips the grouped trips to invoiced atomically with invoice creation.
type InvoiceService struct {
	store repository.Store
	lock  InvoiceLockStore
	now   func() time.Time
}

// InvoiceLockStore serializes invoice construction per client across
// processes. Implemented by the Redis lock store; nil disables locking.
type InvoiceLockStore interface {
	AcquireInvoiceLock(ctx context.Context, clientID string, ttl time.Duration) (bool, error)
	ReleaseInvoiceLock(ctx context.Context, clientID string) error
}

const invoiceLockTTL = 30 * time.Second

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(store repository.Store, lock InvoiceLockStore) *InvoiceService {
	return &InvoiceService{store: store, lock: lock, now: time.Now}
}

// Build creates an invoice from the given trips.
//
// Every trip must have its documents confirmed, must not already be
// invoiced, and must be APPROVED, or DELIVERED in the POD-first flow that
// invoices straight from confirmed deliveries, in which case the trip is
// promoted through approval as part of the same transaction so the
// terminal state stays uniform. All trips must belong to one client.
func (s *InvoiceService) Build(ctx context.Context, tripIDs []string) (*domain.Invoice, error) {
	if len(tripIDs) == 0 {
		return nil, NewValidationError("trip_ids")
	}

	// The lock key is the client, known only after a first read. The
	// batch is read again and fully validated inside the transaction.
	first, err := s.store.Trips().GetByID(ctx, tripIDs[0])
	if err != nil {
		return nil, err
	}

	if s.lock != nil && first.ClientID != "" {
		acquired, err := s.lock.AcquireInvoiceLock(ctx, first.ClientID, invoiceLockTTL)
		if err != nil {
			return nil, err
		}
		if !acquired {
			return nil, ErrInvalidTransition
		}
		defer func() { _ = s.lock.ReleaseInvoiceLock(ctx, first.ClientID) }()
	}

	var invoice *domain.Invoice

	err = s.store.InTx(ctx, func(tx repository.Store) error {
		trips := make([]*domain.Trip, 0, len(tripIDs))
		for _, id := range tripIDs {
			trip, err := tx.Trips().GetByID(ctx, id)
			if err != nil {
				return err
			}
			trips = append(trips, trip)
		}

		clientID := trips[0].ClientID
		for _, trip := range trips {
			if trip.ClientID == "" || trip.ClientID != clientID {
				return &MixedClientError{TripID: trip.ID}
			}
			if trip.Invoiced {
				return ErrInvalidTransition
			}
			if !trip.DocumentsConfirmed {
				return ErrInvalidTransition
			}
			if trip.Status != domain.TripStatusApproved && trip.Status != domain.TripStatusDelivered {
				return ErrInvalidTransition
			}
		}

		issueDate := truncateToDate(s.now())
		invoice = &domain.Invoice{
			ID:         uuid.New().String(),
			ClientID:   clientID,
			ClientName: trips[0].ClientName,
			Status:     domain.InvoiceStatusPending,
			IssueDate:  issueDate,
			DueDate:    issueDate.AddDate(0, 0, invoiceDueDays),
		}

		for _, trip := range trips {
			invoice.TripIDs = append(invoice.TripIDs, trip.ID)
			invoice.Amount += trip.Revenue

			// Promote confirmed deliveries so invoiced always implies
			// manager approval.
			if trip.Status == domain.TripStatusDelivered {
				trip.ApprovedByManager = true
				trip.ApprovedAt = issueDate
			}
			trip.Status = domain.TripStatusInvoiced
			trip.Invoiced = true

			if err := tx.Trips().Update(ctx, trip); err != nil {
				return err
			}
		}

		return tx.Invoices().Create(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	return invoice, nil
}

// Get retrieves an invoice by ID.
func (s *InvoiceService) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.store.Invoices().GetByID(ctx, id)
}

// List retrieves invoices matching the filter.
func (s *InvoiceService) List(ctx context.Context, filter repository.InvoiceListFilter) ([]*domain.Invoice, error) {
	return s.store.Invoices().List(ctx, filter)
}
