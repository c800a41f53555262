package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
// Certificates live in a child table and are replaced wholesale on update;
// drivers hold at most a handful of them.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

const driverColumns = `id, name, phone, license_number, license_class, license_expiry,
	status, assigned_truck_id, assigned_truck_plate, created_at`

// Create persists a new driver and their certificates.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (` + driverColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q.ExecContext(ctx, query,
		driver.ID,
		driver.Name,
		driver.Phone,
		driver.LicenseNumber,
		driver.LicenseClass,
		nullTime(driver.LicenseExpiry),
		driver.Status,
		driver.AssignedTruckID,
		driver.AssignedTruckPlate,
		driver.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return repository.ErrDuplicate
		}
		return err
	}

	return r.insertCertificates(ctx, driver.ID, driver.Certificates)
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`

	driver, err := scanDriver(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	certs, err := r.loadCertificates(ctx, id)
	if err != nil {
		return nil, err
	}
	driver.Certificates = certs

	return driver, nil
}

// GetAll retrieves all drivers with their certificates.
func (r *DriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers ORDER BY name`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.Driver
	byID := make(map[string]*domain.Driver)
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
		byID[driver.ID] = driver
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	certRows, err := r.q.QueryContext(ctx, `
		SELECT driver_id, type, number, issue_date, expiry_date
		FROM driver_certificates ORDER BY driver_id, type
	`)
	if err != nil {
		return nil, err
	}
	defer certRows.Close()

	for certRows.Next() {
		var driverID string
		var cert domain.Certificate
		var issue, expiry sql.NullTime
		if err := certRows.Scan(&driverID, &cert.Type, &cert.Number, &issue, &expiry); err != nil {
			return nil, err
		}
		cert.IssueDate = timeValue(issue)
		cert.ExpiryDate = timeValue(expiry)
		if driver, ok := byID[driverID]; ok {
			driver.Certificates = append(driver.Certificates, cert)
		}
	}

	return drivers, certRows.Err()
}

// Update updates an existing driver and replaces their certificates.
func (r *DriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	query := `
		UPDATE drivers
		SET name = $1, phone = $2, license_number = $3, license_class = $4, license_expiry = $5,
			status = $6, assigned_truck_id = $7, assigned_truck_plate = $8
		WHERE id = $9
	`

	result, err := r.q.ExecContext(ctx, query,
		driver.Name,
		driver.Phone,
		driver.LicenseNumber,
		driver.LicenseClass,
		nullTime(driver.LicenseExpiry),
		driver.Status,
		driver.AssignedTruckID,
		driver.AssignedTruckPlate,
		driver.ID,
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

	if _, err := r.q.ExecContext(ctx, `DELETE FROM driver_certificates WHERE driver_id = $1`, driver.ID); err != nil {
		return err
	}

	return r.insertCertificates(ctx, driver.ID, driver.Certificates)
}

func (r *DriverRepository) insertCertificates(ctx context.Context, driverID string, certs []domain.Certificate) error {
	for _, cert := range certs {
		_, err := r.q.ExecContext(ctx, `
			INSERT INTO driver_certificates (driver_id, type, number, issue_date, expiry_date)
			VALUES ($1, $2, $3, $4, $5)
		`, driverID, cert.Type, cert.Number, nullTime(cert.IssueDate), nullTime(cert.ExpiryDate))
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *DriverRepository) loadCertificates(ctx context.Context, driverID string) ([]domain.Certificate, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT type, number, issue_date, expiry_date
		FROM driver_certificates WHERE driver_id = $1 ORDER BY type
	`, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var certs []domain.Certificate
	for rows.Next() {
		var cert domain.Certificate
		var issue, expiry sql.NullTime
		if err := rows.Scan(&cert.Type, &cert.Number, &issue, &expiry); err != nil {
			return nil, err
		}
		cert.IssueDate = timeValue(issue)
		cert.ExpiryDate = timeValue(expiry)
		certs = append(certs, cert)
	}

	return certs, rows.Err()
}

func scanDriver(row rowScanner) (*domain.Driver, error) {
	var driver domain.Driver
	var licenseExpiry sql.NullTime

	if err := row.Scan(
		&driver.ID,
		&driver.Name,
		&driver.Phone,
		&driver.LicenseNumber,
		&driver.LicenseClass,
		&licenseExpiry,
		&driver.Status,
		&driver.AssignedTruckID,
		&driver.AssignedTruckPlate,
		&driver.CreatedAt,
	); err != nil {
		return nil, err
	}

	driver.LicenseExpiry = timeValue(licenseExpiry)

	return &driver, nil
}

// Ensure DriverRepository implements repository.DriverRepository.
var _ repository.DriverRepository = (*DriverRepository)(nil)
