package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

// TripService runs the trip lifecycle state machine:
//
//	CREATED -> IN_PROGRESS -> DELIVERED -> APPROVED -> INVOICED
//
// CANCELLED is reachable from CREATED and IN_PROGRESS only. The APPROVED ->
// INVOICED transition belongs to the invoice batch builder, never to this
// service directly.
type TripService struct {
	store    repository.Store
	notifier *NotificationService
	now      func() time.Time
}

// NewTripService creates a new TripService.
func NewTripService(store repository.Store, notifier *NotificationService) *TripService {
	return &TripService{store: store, notifier: notifier, now: time.Now}
}

// CreateTripRequest contains the parameters for creating a trip.
//
// Planned trips are created manager-first with the administrative fields
// known up front. POD-first trips are created by a driver after the fact:
// delivery documents and a free-text destination come in before client,
// truck or revenue are known, and the trip starts at DELIVERED.
type CreateTripRequest struct {
	Planned                  bool
	ClientID                 string
	TruckID                  string
	DriverID                 string
	OriginCity               string
	DestinationCity          string
	CargoDescription         string
	Revenue                  float64
	DriverEnteredDestination string
	DeliveryDocuments        []string
}

// Create creates a trip in one of the two flows.
func (s *TripService) Create(ctx context.Context, req CreateTripRequest) (*domain.Trip, error) {
	trip := &domain.Trip{
		ID:               uuid.New().String(),
		OriginCity:       req.OriginCity,
		DestinationCity:  req.DestinationCity,
		CargoDescription: req.CargoDescription,
		Revenue:          req.Revenue,
		IsPlanned:        req.Planned,
		CreatedAt:        s.now(),
	}

	if req.Planned {
		trip.Status = domain.TripStatusCreated
	} else {
		// POD-first: the delivery already happened, so the trip enters
		// the machine at DELIVERED.
		if len(req.DeliveryDocuments) == 0 {
			return nil, NewValidationError("delivery_documents")
		}
		if len(req.DeliveryDocuments) > domain.MaxDeliveryDocuments {
			return nil, NewValidationError("delivery_documents")
		}
		if req.DriverEnteredDestination == "" {
			return nil, NewValidationError("driver_entered_destination")
		}

		trip.Status = domain.TripStatusDelivered
		trip.DriverEnteredDestination = req.DriverEnteredDestination
		trip.DeliveryDocuments = req.DeliveryDocuments
		trip.DeliveredAt = trip.CreatedAt
	}

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		if req.ClientID != "" {
			client, err := tx.Clients().GetByID(ctx, req.ClientID)
			if err != nil {
				return err
			}
			trip.ClientID = client.ID
			trip.ClientName = client.CompanyName
		}

		if req.DriverID != "" {
			driver, err := tx.Drivers().GetByID(ctx, req.DriverID)
			if err != nil {
				return err
			}
			trip.DriverID = driver.ID
			trip.DriverName = driver.Name
		}

		if req.TruckID != "" {
			truck, err := tx.Trucks().GetByID(ctx, req.TruckID)
			if err != nil {
				return err
			}
			trip.TruckID = truck.ID
			trip.TruckPlate = truck.PlateNumber
		}

		return tx.Trips().Create(ctx, trip)
	})
	if err != nil {
		return nil, err
	}

	return trip, nil
}

// Take moves a CREATED trip to IN_PROGRESS: the driver assigns itself and a
// chosen available truck. The driver flips to ON_TRIP and the truck to
// IN_TRANSIT in the same transaction.
func (s *TripService) Take(ctx context.Context, tripID, driverID, truckID string) (*domain.Trip, error) {
	var missing []string
	if driverID == "" {
		missing = append(missing, "driver_id")
	}
	if truckID == "" {
		missing = append(missing, "truck_id")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	var taken *domain.Trip

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		trip, err := tx.Trips().GetByID(ctx, tripID)
		if err != nil {
			return err
		}

		if trip.Status != domain.TripStatusCreated {
			return ErrInvalidTransition
		}

		driver, err := tx.Drivers().GetByID(ctx, driverID)
		if err != nil {
			return err
		}
		if driver.Status != domain.DriverStatusAvailable {
			return ErrDriverUnavailable
		}

		truck, err := tx.Trucks().GetByID(ctx, truckID)
		if err != nil {
			return err
		}
		if truck.Status != domain.TruckStatusAvailable {
			return ErrTruckUnavailable
		}

		trip.Status = domain.TripStatusInProgress
		trip.DriverID = driver.ID
		trip.DriverName = driver.Name
		trip.TruckID = truck.ID
		trip.TruckPlate = truck.PlateNumber

		driver.Status = domain.DriverStatusOnTrip
		truck.Status = domain.TruckStatusInTransit

		if err := tx.Drivers().Update(ctx, driver); err != nil {
			return err
		}
		if err := tx.Trucks().Update(ctx, truck); err != nil {
			return err
		}
		if err := tx.Trips().Update(ctx, trip); err != nil {
			return err
		}

		taken = trip
		return nil
	})
	if err != nil {
		return nil, err
	}

	return taken, nil
}

// UploadDeliveryDocuments moves an IN_PROGRESS trip to DELIVERED with the
// given proof-of-delivery references (1 to 3 in total). The driver and
// truck are released back to available in the same transaction.
func (s *TripService) UploadDeliveryDocuments(ctx context.Context, tripID string, refs []string) (*domain.Trip, error) {
	if len(refs) == 0 {
		return nil, NewValidationError("delivery_documents")
	}

	var delivered *domain.Trip

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		trip, err := tx.Trips().GetByID(ctx, tripID)
		if err != nil {
			return err
		}

		if trip.Status != domain.TripStatusInProgress {
			return ErrInvalidTransition
		}

		if len(trip.DeliveryDocuments)+len(refs) > domain.MaxDeliveryDocuments {
			return NewValidationError("delivery_documents")
		}

		trip.DeliveryDocuments = append(trip.DeliveryDocuments, refs...)
		trip.Status = domain.TripStatusDelivered
		trip.DeliveredAt = s.now()

		if err := s.releaseCrew(ctx, tx, trip); err != nil {
			return err
		}

		if err := tx.Trips().Update(ctx, trip); err != nil {
			return err
		}

		delivered = trip
		return nil
	})
	if err != nil {
		return nil, err
	}

	return delivered, nil
}

// ConfirmDocuments marks the delivery documents of a DELIVERED or APPROVED
// trip as reviewed and legible. This gate is independent of manager
// approval; both must be true before the trip can be invoiced.
func (s *TripService) ConfirmDocuments(ctx context.Context, tripID string) (*domain.Trip, error) {
	var confirmed *domain.Trip

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		trip, err := tx.Trips().GetByID(ctx, tripID)
		if err != nil {
			return err
		}

		if trip.Status != domain.TripStatusDelivered && trip.Status != domain.TripStatusApproved {
			return ErrInvalidTransition
		}
		if len(trip.DeliveryDocuments) == 0 {
			return NewValidationError("delivery_documents")
		}

		trip.DocumentsConfirmed = true

		if err := tx.Trips().Update(ctx, trip); err != nil {
			return err
		}

		confirmed = trip
		return nil
	})
	if err != nil {
		return nil, err
	}

	return confirmed, nil
}

// ApproveTripRequest contains the fields a manager may fill in at approval
// time. Zero values leave the trip's current values untouched.
type ApproveTripRequest struct {
	TripID     string
	ClientID   string
	Revenue    float64
	Expenses   *domain.TripExpenses
	ReviewedBy string
}

// Approve moves a DELIVERED trip to APPROVED. Every administrative field
// must be complete; missing ones are reported together by name, never as a
// generic failure. In the planned flow approval also confirms the
// documents, since the manager reviews them as part of the same action.
func (s *TripService) Approve(ctx context.Context, req ApproveTripRequest) (*domain.Trip, error) {
	var approved *domain.Trip

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		trip, err := tx.Trips().GetByID(ctx, req.TripID)
		if err != nil {
			return err
		}

		if trip.Status != domain.TripStatusDelivered {
			return ErrInvalidTransition
		}

		// Late fill-ins: POD-first trips typically get client and revenue
		// only now.
		if req.ClientID != "" {
			client, err := tx.Clients().GetByID(ctx, req.ClientID)
			if err != nil {
				return err
			}
			trip.ClientID = client.ID
			trip.ClientName = client.CompanyName
		}
		if req.Revenue > 0 {
			trip.Revenue = req.Revenue
		}
		if req.Expenses != nil {
			trip.Expenses = *req.Expenses
		}

		var missing []string
		if trip.ClientID == "" {
			missing = append(missing, "client_id")
		}
		if trip.DriverID == "" {
			missing = append(missing, "driver_id")
		}
		if trip.TruckID == "" {
			missing = append(missing, "truck_id")
		}
		if trip.CargoDescription == "" {
			missing = append(missing, "cargo_description")
		}
		if trip.Revenue <= 0 {
			missing = append(missing, "revenue")
		}
		if len(trip.DeliveryDocuments) == 0 {
			missing = append(missing, "delivery_documents")
		}
		if len(missing) > 0 {
			return &ValidationError{Fields: missing}
		}

		trip.Status = domain.TripStatusApproved
		trip.ApprovedByManager = true
		trip.ApprovedAt = s.now()
		if trip.IsPlanned {
			trip.DocumentsConfirmed = true
		}

		if err := tx.Trips().Update(ctx, trip); err != nil {
			return err
		}

		approved = trip
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyTripApproved(ctx, approved)
	}

	return approved, nil
}

// Cancel cancels a trip. Permitted from CREATED or IN_PROGRESS only; once
// delivered the trip must be corrected through management override, not
// cancellation. An in-progress cancellation releases the crew.
func (s *TripService) Cancel(ctx context.Context, tripID string) (*domain.Trip, error) {
	var cancelled *domain.Trip

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		trip, err := tx.Trips().GetByID(ctx, tripID)
		if err != nil {
			return err
		}

		if trip.Status != domain.TripStatusCreated && trip.Status != domain.TripStatusInProgress {
			return ErrInvalidTransition
		}

		if trip.Status == domain.TripStatusInProgress {
			if err := s.releaseCrew(ctx, tx, trip); err != nil {
				return err
			}
		}

		trip.Status = domain.TripStatusCancelled
		trip.CancelledAt = s.now()

		if err := tx.Trips().Update(ctx, trip); err != nil {
			return err
		}

		cancelled = trip
		return nil
	})
	if err != nil {
		return nil, err
	}

	return cancelled, nil
}

// Get retrieves a trip by ID.
func (s *TripService) Get(ctx context.Context, tripID string) (*domain.Trip, error) {
	return s.store.Trips().GetByID(ctx, tripID)
}

// List retrieves trips matching the filter.
func (s *TripService) List(ctx context.Context, filter repository.TripListFilter) ([]*domain.Trip, error) {
	return s.store.Trips().List(ctx, filter)
}

// releaseCrew returns the trip's driver and truck to available status.
func (s *TripService) releaseCrew(ctx context.Context, tx repository.Store, trip *domain.Trip) error {
	if trip.DriverID != "" {
		driver, err := tx.Drivers().GetByID(ctx, trip.DriverID)
		if err != nil {
			return err
		}
		if driver.Status == domain.DriverStatusOnTrip {
			driver.Status = domain.DriverStatusAvailable
			if err := tx.Drivers().Update(ctx, driver); err != nil {
				return err
			}
		}
	}

	if trip.TruckID != "" {
		truck, err := tx.Trucks().GetByID(ctx, trip.TruckID)
		if err != nil {
			return err
		}
		if truck.Status == domain.TruckStatusInTransit {
			truck.Status = domain.TruckStatusAvailable
			if err := tx.Trucks().Update(ctx, truck); err != nil {
				return err
			}
		}
	}

	return nil
}
