package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

// AssignmentService runs the truck assignment workflow: a driver requests a
// truck, a manager approves (possibly substituting a different truck) or
// rejects. Approval pairs driver and truck reciprocally in one transaction
// so neither side can be observed half-linked.
type AssignmentService struct {
	store    repository.Store
	lock     LockStore
	notifier *NotificationService
	now      func() time.Time
}

// LockStore serializes reviews of the same driver's request across
// processes. Implemented by the Redis lock store; nil disables locking
// (single-process deployments rely on the store transaction alone).
type LockStore interface {
	AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error)
	ReleaseDriverLock(ctx context.Context, driverID string) error
}

const reviewLockTTL = 10 * time.Second

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(store repository.Store, lock LockStore, notifier *NotificationService) *AssignmentService {
	return &AssignmentService{store: store, lock: lock, notifier: notifier, now: time.Now}
}

// Request creates a pending assignment request. A driver may have at most
// one outstanding pending request.
func (s *AssignmentService) Request(ctx context.Context, driverID, preferredTruckID string) (*domain.TruckAssignmentRequest, error) {
	if driverID == "" {
		return nil, NewValidationError("driver_id")
	}
	if preferredTruckID == "" {
		return nil, NewValidationError("preferred_truck_id")
	}

	var request *domain.TruckAssignmentRequest

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		driver, err := tx.Drivers().GetByID(ctx, driverID)
		if err != nil {
			return err
		}

		truck, err := tx.Trucks().GetByID(ctx, preferredTruckID)
		if err != nil {
			return err
		}

		outstanding, err := tx.Requests().GetPendingByDriverID(ctx, driverID)
		if err != nil {
			return err
		}
		if outstanding != nil {
			return ErrDuplicateRequest
		}

		request = &domain.TruckAssignmentRequest{
			ID:                  uuid.New().String(),
			DriverID:            driver.ID,
			DriverName:          driver.Name,
			PreferredTruckID:    truck.ID,
			PreferredTruckPlate: truck.PlateNumber,
			Status:              domain.RequestStatusPending,
			RequestedAt:         s.now(),
		}

		return tx.Requests().Create(ctx, request)
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

// Approve moves a pending request to APPROVED, assigning the given truck.
// The assigned truck need not be the preferred one; any currently
// unassigned truck qualifies. An empty assignedTruckID falls back to the
// driver's preference. Driver and truck links are set reciprocally in the
// same transaction.
func (s *AssignmentService) Approve(ctx context.Context, requestID, assignedTruckID, reviewedBy string) (*domain.TruckAssignmentRequest, error) {
	current, err := s.store.Requests().GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	var approved *domain.TruckAssignmentRequest

	err = s.withReviewLock(ctx, current.DriverID, func() error {
		return s.store.InTx(ctx, func(tx repository.Store) error {
			req, err := tx.Requests().GetByID(ctx, requestID)
			if err != nil {
				return err
			}

			if req.Status != domain.RequestStatusPending {
				return ErrInvalidTransition
			}

			unassigned, err := tx.Trucks().GetUnassigned(ctx)
			if err != nil {
				return err
			}
			if len(unassigned) == 0 {
				return ErrNoAvailableTrucks
			}

			truckID := assignedTruckID
			if truckID == "" {
				truckID = req.PreferredTruckID
			}

			truck, err := tx.Trucks().GetByID(ctx, truckID)
			if err != nil {
				return err
			}
			if truck.Assigned() {
				return ErrTruckUnavailable
			}

			driver, err := tx.Drivers().GetByID(ctx, req.DriverID)
			if err != nil {
				return err
			}

			req.Status = domain.RequestStatusApproved
			req.AssignedTruckID = truck.ID
			req.AssignedTruckPlate = truck.PlateNumber
			req.ReviewedAt = s.now()
			req.ReviewedBy = reviewedBy

			driver.AssignedTruckID = truck.ID
			driver.AssignedTruckPlate = truck.PlateNumber
			truck.AssignedDriverID = driver.ID
			truck.AssignedDriverName = driver.Name

			if err := tx.Drivers().Update(ctx, driver); err != nil {
				return err
			}
			if err := tx.Trucks().Update(ctx, truck); err != nil {
				return err
			}
			if err := tx.Requests().Update(ctx, req); err != nil {
				return err
			}

			approved = req
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyAssignmentReviewed(ctx, approved)
	}

	return approved, nil
}

// Reject moves a pending request to REJECTED. The note is required; the
// driver must always be told why.
func (s *AssignmentService) Reject(ctx context.Context, requestID, note, reviewedBy string) (*domain.TruckAssignmentRequest, error) {
	if note == "" {
		return nil, NewValidationError("rejection_note")
	}

	var rejected *domain.TruckAssignmentRequest

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		req, err := tx.Requests().GetByID(ctx, requestID)
		if err != nil {
			return err
		}

		if req.Status != domain.RequestStatusPending {
			return ErrInvalidTransition
		}

		req.Status = domain.RequestStatusRejected
		req.RejectionNote = note
		req.ReviewedAt = s.now()
		req.ReviewedBy = reviewedBy

		if err := tx.Requests().Update(ctx, req); err != nil {
			return err
		}

		rejected = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyAssignmentReviewed(ctx, rejected)
	}

	return rejected, nil
}

// Get retrieves a request by ID.
func (s *AssignmentService) Get(ctx context.Context, id string) (*domain.TruckAssignmentRequest, error) {
	return s.store.Requests().GetByID(ctx, id)
}

// List retrieves requests matching the filter.
func (s *AssignmentService) List(ctx context.Context, filter repository.RequestListFilter) ([]*domain.TruckAssignmentRequest, error) {
	return s.store.Requests().List(ctx, filter)
}

// withReviewLock wraps fn with the cross-process driver lock when one is
// configured.
func (s *AssignmentService) withReviewLock(ctx context.Context, driverID string, fn func() error) error {
	if s.lock == nil {
		return fn()
	}

	acquired, err := s.lock.AcquireDriverLock(ctx, driverID, reviewLockTTL)
	if err != nil {
		return err
	}
	if !acquired {
		return ErrInvalidTransition
	}
	defer func() { _ = s.lock.ReleaseDriverLock(ctx, driverID) }()

	return fn()
}
