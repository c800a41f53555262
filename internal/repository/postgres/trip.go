package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

const tripColumns = `id, client_id, client_name, truck_id, truck_plate, driver_id, driver_name,
	origin_city, destination_city, cargo_description, revenue,
	expense_fuel, expense_tolls, expense_other, expense_other_reason,
	status, is_planned, driver_entered_destination, delivery_documents,
	documents_confirmed, approved_by_manager, invoiced,
	created_at, delivered_at, approved_at, cancelled_at`

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
	`

	_, err := r.q.ExecContext(ctx, query,
		trip.ID,
		trip.ClientID,
		trip.ClientName,
		trip.TruckID,
		trip.TruckPlate,
		trip.DriverID,
		trip.DriverName,
		trip.OriginCity,
		trip.DestinationCity,
		trip.CargoDescription,
		trip.Revenue,
		trip.Expenses.Fuel,
		trip.Expenses.Tolls,
		trip.Expenses.Other,
		trip.Expenses.OtherReason,
		trip.Status,
		trip.IsPlanned,
		trip.DriverEnteredDestination,
		pq.StringArray(trip.DeliveryDocuments),
		trip.DocumentsConfirmed,
		trip.ApprovedByManager,
		trip.Invoiced,
		trip.CreatedAt,
		nullTime(trip.DeliveredAt),
		nullTime(trip.ApprovedAt),
		nullTime(trip.CancelledAt),
	)

	return err
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	trip, err := scanTrip(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return trip, nil
}

// List retrieves trips matching the filter.
func (r *TripRepository) List(ctx context.Context, filter repository.TripListFilter) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE 1=1`
	var args []any

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if filter.DriverID != nil {
		args = append(args, *filter.DriverID)
		query += fmt.Sprintf(" AND driver_id = $%d", len(args))
	}
	if filter.Invoiceable {
		query += " AND documents_confirmed AND NOT invoiced AND status IN ('DELIVERED', 'APPROVED')"
	}
	query += " ORDER BY created_at"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

// Update updates an existing trip.
func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	query := `
		UPDATE trips
		SET client_id = $1, client_name = $2, truck_id = $3, truck_plate = $4,
			driver_id = $5, driver_name = $6, origin_city = $7, destination_city = $8,
			cargo_description = $9, revenue = $10,
			expense_fuel = $11, expense_tolls = $12, expense_other = $13, expense_other_reason = $14,
			status = $15, driver_entered_destination = $16, delivery_documents = $17,
			documents_confirmed = $18, approved_by_manager = $19, invoiced = $20,
			delivered_at = $21, approved_at = $22, cancelled_at = $23
		WHERE id = $24
	`

	result, err := r.q.ExecContext(ctx, query,
		trip.ClientID,
		trip.ClientName,
		trip.TruckID,
		trip.TruckPlate,
		trip.DriverID,
		trip.DriverName,
		trip.OriginCity,
		trip.DestinationCity,
		trip.CargoDescription,
		trip.Revenue,
		trip.Expenses.Fuel,
		trip.Expenses.Tolls,
		trip.Expenses.Other,
		trip.Expenses.OtherReason,
		trip.Status,
		trip.DriverEnteredDestination,
		pq.StringArray(trip.DeliveryDocuments),
		trip.DocumentsConfirmed,
		trip.ApprovedByManager,
		trip.Invoiced,
		nullTime(trip.DeliveredAt),
		nullTime(trip.ApprovedAt),
		nullTime(trip.CancelledAt),
		trip.ID,
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

func scanTrip(row rowScanner) (*domain.Trip, error) {
	var trip domain.Trip
	var documents pq.StringArray
	var deliveredAt, approvedAt, cancelledAt sql.NullTime

	if err := row.Scan(
		&trip.ID,
		&trip.ClientID,
		&trip.ClientName,
		&trip.TruckID,
		&trip.TruckPlate,
		&trip.DriverID,
		&trip.DriverName,
		&trip.OriginCity,
		&trip.DestinationCity,
		&trip.CargoDescription,
		&trip.Revenue,
		&trip.Expenses.Fuel,
		&trip.Expenses.Tolls,
		&trip.Expenses.Other,
		&trip.Expenses.OtherReason,
		&trip.Status,
		&trip.IsPlanned,
		&trip.DriverEnteredDestination,
		&documents,
		&trip.DocumentsConfirmed,
		&trip.ApprovedByManager,
		&trip.Invoiced,
		&trip.CreatedAt,
		&deliveredAt,
		&approvedAt,
		&cancelledAt,
	); err != nil {
		return nil, err
	}

	trip.DeliveryDocuments = []string(documents)
	trip.DeliveredAt = timeValue(deliveredAt)
	trip.ApprovedAt = timeValue(approvedAt)
	trip.CancelledAt = timeValue(cancelledAt)

	return &trip, nil
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
