package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

// TruckRepository is a PostgreSQL implementation of repository.TruckRepository.
type TruckRepository struct {
	q Querier
}

// NewTruckRepository creates a new PostgreSQL truck repository.
func NewTruckRepository(db *sql.DB) *TruckRepository {
	return &TruckRepository{q: db}
}

// NewTruckRepositoryWithTx creates a truck repository using a transaction.
func NewTruckRepositoryWithTx(tx *sql.Tx) *TruckRepository {
	return &TruckRepository{q: tx}
}

const truckColumns = `id, plate_number, type, status, assigned_driver_id, assigned_driver_name,
	compulsory_insurance_expiry, comprehensive_insurance_expiry, inspection_expiry, created_at`

// Create persists a new truck.
func (r *TruckRepository) Create(ctx context.Context, truck *domain.Truck) error {
	query := `
		INSERT INTO trucks (` + truckColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q.ExecContext(ctx, query,
		truck.ID,
		truck.PlateNumber,
		truck.Type,
		truck.Status,
		truck.AssignedDriverID,
		truck.AssignedDriverName,
		nullTime(truck.CompulsoryInsuranceExpiry),
		nullTime(truck.ComprehensiveInsuranceExpiry),
		nullTime(truck.InspectionExpiry),
		truck.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return repository.ErrDuplicate
		}
		return err
	}

	return nil
}

// GetByID retrieves a truck by ID.
func (r *TruckRepository) GetByID(ctx context.Context, id string) (*domain.Truck, error) {
	query := `SELECT ` + truckColumns + ` FROM trucks WHERE id = $1`

	truck, err := scanTruck(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return truck, nil
}

// GetAll retrieves all trucks.
func (r *TruckRepository) GetAll(ctx context.Context) ([]*domain.Truck, error) {
	query := `SELECT ` + truckColumns + ` FROM trucks ORDER BY plate_number`
	return r.queryTrucks(ctx, query)
}

// GetUnassigned retrieves trucks not paired with any driver.
func (r *TruckRepository) GetUnassigned(ctx context.Context) ([]*domain.Truck, error) {
	query := `SELECT ` + truckColumns + ` FROM trucks WHERE assigned_driver_id = '' ORDER BY plate_number`
	return r.queryTrucks(ctx, query)
}

func (r *TruckRepository) queryTrucks(ctx context.Context, query string, args ...any) ([]*domain.Truck, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trucks []*domain.Truck
	for rows.Next() {
		truck, err := scanTruck(rows)
		if err != nil {
			return nil, err
		}
		trucks = append(trucks, truck)
	}

	return trucks, rows.Err()
}

// Update updates an existing truck.
func (r *TruckRepository) Update(ctx context.Context, truck *domain.Truck) error {
	query := `
		UPDATE trucks
		SET plate_number = $1, type = $2, status = $3, assigned_driver_id = $4, assigned_driver_name = $5,
			compulsory_insurance_expiry = $6, comprehensive_insurance_expiry = $7, inspection_expiry = $8
		WHERE id = $9
	`

	result, err := r.q.ExecContext(ctx, query,
		truck.PlateNumber,
		truck.Type,
		truck.Status,
		truck.AssignedDriverID,
		truck.AssignedDriverName,
		nullTime(truck.CompulsoryInsuranceExpiry),
		nullTime(truck.ComprehensiveInsuranceExpiry),
		nullTime(truck.InspectionExpiry),
		truck.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTruck(row rowScanner) (*domain.Truck, error) {
	var truck domain.Truck
	var compulsory, comprehensive, inspection sql.NullTime

	if err := row.Scan(
		&truck.ID,
		&truck.PlateNumber,
		&truck.Type,
		&truck.Status,
		&truck.AssignedDriverID,
		&truck.AssignedDriverName,
		&compulsory,
		&comprehensive,
		&inspection,
		&truck.CreatedAt,
	); err != nil {
		return nil, err
	}

	truck.CompulsoryInsuranceExpiry = timeValue(compulsory)
	truck.ComprehensiveInsuranceExpiry = timeValue(comprehensive)
	truck.InspectionExpiry = timeValue(inspection)

	return &truck, nil
}

// Ensure TruckRepository implements repository.TruckRepository.
var _ repository.TruckRepository = (*TruckRepository)(nil)
