package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"naklos/internal/repository"
)

// Querier is an interface satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Ensure interfaces are satisfied.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// Store is the PostgreSQL implementation of repository.Store. Outside a
// transaction the repositories run against the pool; inside InTx they share
// one *sql.Tx.
type Store struct {
	db *sql.DB
	tx *sql.Tx
}

// NewStore creates a new PostgreSQL store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) querier() Querier {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// Trucks returns the truck repository.
func (s *Store) Trucks() repository.TruckRepository { return &TruckRepository{q: s.querier()} }

// Drivers returns the driver repository.
func (s *Store) Drivers() repository.DriverRepository { return &DriverRepository{q: s.querier()} }

// Clients returns the client repository.
func (s *Store) Clients() repository.ClientRepository { return &ClientRepository{q: s.querier()} }

// Trips returns the trip repository.
func (s *Store) Trips() repository.TripRepository { return &TripRepository{q: s.querier()} }

// Submissions returns the document submission repository.
func (s *Store) Submissions() repository.SubmissionRepository {
	return &SubmissionRepository{q: s.querier()}
}

// Requests returns the truck assignment request repository.
func (s *Store) Requests() repository.RequestRepository { return &RequestRepository{q: s.querier()} }

// Invoices returns the invoice repository.
func (s *Store) Invoices() repository.InvoiceRepository { return &InvoiceRepository{q: s.querier()} }

// InTx runs fn inside a database transaction. Nested calls join the
// enclosing transaction.
func (s *Store) InTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&Store{db: s.db, tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}

// Ensure Store implements repository.Store.
var _ repository.Store = (*Store)(nil)

// nullTime maps the zero time to NULL. Expiry and review timestamps use the
// zero value to mean "not set".
func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

func timeValue(t sql.NullTime) time.Time {
	if t.Valid {
		return t.Time
	}
	return time.Time{}
}
