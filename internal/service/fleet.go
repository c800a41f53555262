package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

// FleetService registers and reads the fleet master data: trucks, drivers
// and clients. The workflow services reference these entities but never
// create them.
type FleetService struct {
	store repository.Store
	now   func() time.Time
}

// NewFleetService creates a new FleetService.
func NewFleetService(store repository.Store) *FleetService {
	return &FleetService{store: store, now: time.Now}
}

// RegisterTruckRequest contains the parameters for registering a truck.
type RegisterTruckRequest struct {
	PlateNumber                  string
	Type                         string
	CompulsoryInsuranceExpiry    time.Time
	ComprehensiveInsuranceExpiry time.Time
	InspectionExpiry             time.Time
}

// RegisterTruck adds a truck to the fleet. Expiry dates are optional at
// registration; missing ones surface later through document submissions.
func (s *FleetService) RegisterTruck(ctx context.Context, req RegisterTruckRequest) (*domain.Truck, error) {
	var missing []string
	if req.PlateNumber == "" {
		missing = append(missing, "plate_number")
	}
	if req.Type == "" {
		missing = append(missing, "type")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	truck := &domain.Truck{
		ID:                           uuid.New().String(),
		PlateNumber:                  req.PlateNumber,
		Type:                         req.Type,
		Status:                       domain.TruckStatusAvailable,
		CompulsoryInsuranceExpiry:    req.CompulsoryInsuranceExpiry,
		ComprehensiveInsuranceExpiry: req.ComprehensiveInsuranceExpiry,
		InspectionExpiry:             req.InspectionExpiry,
		CreatedAt:                    s.now(),
	}

	if err := s.store.Trucks().Create(ctx, truck); err != nil {
		return nil, err
	}

	return truck, nil
}

// RegisterDriverRequest contains the parameters for registering a driver.
type RegisterDriverRequest struct {
	Name          string
	Phone         string
	LicenseNumber string
	LicenseClass  string
	LicenseExpiry time.Time
	Certificates  []domain.Certificate
}

// RegisterDriver adds a driver to the fleet.
func (s *FleetService) RegisterDriver(ctx context.Context, req RegisterDriverRequest) (*domain.Driver, error) {
	var missing []string
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Phone == "" {
		missing = append(missing, "phone")
	}
	if req.LicenseNumber == "" {
		missing = append(missing, "license_number")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	driver := &domain.Driver{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Phone:         req.Phone,
		LicenseNumber: req.LicenseNumber,
		LicenseClass:  req.LicenseClass,
		LicenseExpiry: req.LicenseExpiry,
		Status:        domain.DriverStatusAvailable,
		Certificates:  req.Certificates,
		CreatedAt:     s.now(),
	}

	if err := s.store.Drivers().Create(ctx, driver); err != nil {
		return nil, err
	}

	return driver, nil
}

// RegisterClientRequest contains the parameters for registering a client.
type RegisterClientRequest struct {
	CompanyName   string
	TaxID         string
	ContactPerson string
	Phone         string
	Email         string
	City          string
}

// RegisterClient adds a freight client.
func (s *FleetService) RegisterClient(ctx context.Context, req RegisterClientRequest) (*domain.Client, error) {
	var missing []string
	if req.CompanyName == "" {
		missing = append(missing, "company_name")
	}
	if req.TaxID == "" {
		missing = append(missing, "tax_id")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	client := &domain.Client{
		ID:            uuid.New().String(),
		CompanyName:   req.CompanyName,
		TaxID:         req.TaxID,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		City:          req.City,
		CreatedAt:     s.now(),
	}

	if err := s.store.Clients().Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// GetTruck retrieves a truck by ID.
func (s *FleetService) GetTruck(ctx context.Context, id string) (*domain.Truck, error) {
	return s.store.Trucks().GetByID(ctx, id)
}

// ListTrucks retrieves all trucks.
func (s *FleetService) ListTrucks(ctx context.Context) ([]*domain.Truck, error) {
	return s.store.Trucks().GetAll(ctx)
}

// GetDriver retrieves a driver by ID.
func (s *FleetService) GetDriver(ctx context.Context, id string) (*domain.Driver, error) {
	return s.store.Drivers().GetByID(ctx, id)
}

// ListDrivers retrieves all drivers.
func (s *FleetService) ListDrivers(ctx context.Context) ([]*domain.Driver, error) {
	return s.store.Drivers().GetAll(ctx)
}

// GetClient retrieves a client by ID.
func (s *FleetService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.store.Clients().GetByID(ctx, id)
}

// ListClients retrieves all clients.
func (s *FleetService) ListClients(ctx context.Context) ([]*domain.Client, error) {
	return s.store.Clients().GetAll(ctx)
}
