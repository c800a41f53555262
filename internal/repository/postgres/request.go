package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

// RequestRepository is a PostgreSQL implementation of
// repository.RequestRepository.
type RequestRepository struct {
	q Querier
}

// NewRequestRepository creates a new PostgreSQL request repository.
func NewRequestRepository(db *sql.DB) *RequestRepository {
	return &RequestRepository{q: db}
}

// NewRequestRepositoryWithTx creates a request repository using a transaction.
func NewRequestRepositoryWithTx(tx *sql.Tx) *RequestRepository {
	return &RequestRepository{q: tx}
}

const requestColumns = `id, driver_id, driver_name, preferred_truck_id, preferred_truck_plate,
	assigned_truck_id, assigned_truck_plate, status, requested_at, reviewed_at, reviewed_by, rejection_note`

// Create persists a new request.
func (r *RequestRepository) Create(ctx context.Context, req *domain.TruckAssignmentRequest) error {
	query := `
		INSERT INTO truck_assignment_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.q.ExecContext(ctx, query,
		req.ID,
		req.DriverID,
		req.DriverName,
		req.PreferredTruckID,
		req.PreferredTruckPlate,
		req.AssignedTruckID,
		req.AssignedTruckPlate,
		req.Status,
		req.RequestedAt,
		nullTime(req.ReviewedAt),
		req.ReviewedBy,
		req.RejectionNote,
	)

	return err
}

// GetByID retrieves a request by ID.
func (r *RequestRepository) GetByID(ctx context.Context, id string) (*domain.TruckAssignmentRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM truck_assignment_requests WHERE id = $1`

	req, err := scanRequest(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

// GetPendingByDriverID retrieves the driver's outstanding pending request.
// Returns nil if none exists.
func (r *RequestRepository) GetPendingByDriverID(ctx context.Context, driverID string) (*domain.TruckAssignmentRequest, error) {
	query := `
		SELECT ` + requestColumns + ` FROM truck_assignment_requests
		WHERE driver_id = $1 AND status = $2
		LIMIT 1
	`

	req, err := scanRequest(r.q.QueryRowContext(ctx, query, driverID, domain.RequestStatusPending))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return req, nil
}

// List retrieves requests matching the filter.
func (r *RequestRepository) List(ctx context.Context, filter repository.RequestListFilter) ([]*domain.TruckAssignmentRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM truck_assignment_requests WHERE 1=1`
	var args []any

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.DriverID != nil {
		args = append(args, *filter.DriverID)
		query += fmt.Sprintf(" AND driver_id = $%d", len(args))
	}
	query += " ORDER BY requested_at"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []*domain.TruckAssignmentRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}

	return reqs, rows.Err()
}

// Update updates an existing request.
func (r *RequestRepository) Update(ctx context.Context, req *domain.TruckAssignmentRequest) error {
	query := `
		UPDATE truck_assignment_requests
		SET assigned_truck_id = $1, assigned_truck_plate = $2, status = $3,
			reviewed_at = $4, reviewed_by = $5, rejection_note = $6
		WHERE id = $7
	`

	result, err := r.q.ExecContext(ctx, query,
		req.AssignedTruckID,
		req.AssignedTruckPlate,
		req.Status,
		nullTime(req.ReviewedAt),
		req.ReviewedBy,
		req.RejectionNote,
		req.ID,
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

func scanRequest(row rowScanner) (*domain.TruckAssignmentRequest, error) {
	var req domain.TruckAssignmentRequest
	var reviewedAt sql.NullTime

	if err := row.Scan(
		&req.ID,
		&req.DriverID,
		&req.DriverName,
		&req.PreferredTruckID,
		&req.PreferredTruckPlate,
		&req.AssignedTruckID,
		&req.AssignedTruckPlate,
		&req.Status,
		&req.RequestedAt,
		&reviewedAt,
		&req.ReviewedBy,
		&req.RejectionNote,
	); err != nil {
		return nil, err
	}

	req.ReviewedAt = timeValue(reviewedAt)

	return &req, nil
}

// Ensure RequestRepository implements repository.RequestRepository.
var _ repository.RequestRepository = (*RequestRepository)(nil)
