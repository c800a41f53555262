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

// InvoiceRepository is a PostgreSQL implementation of
// repository.InvoiceRepository.
type InvoiceRepository struct {
	q Querier
}

// NewInvoiceRepository creates a new PostgreSQL invoice repository.
func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{q: db}
}

// NewInvoiceRepositoryWithTx creates an invoice repository using a transaction.
func NewInvoiceRepositoryWithTx(tx *sql.Tx) *InvoiceRepository {
	return &InvoiceRepository{q: tx}
}

const invoiceColumns = `id, client_id, client_name, trip_ids, amount, status, issue_date, due_date, paid_date`

// Create persists a new invoice.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		invoice.ID,
		invoice.ClientID,
		invoice.ClientName,
		pq.StringArray(invoice.TripIDs),
		invoice.Amount,
		invoice.Status,
		invoice.IssueDate,
		invoice.DueDate,
		nullTime(invoice.PaidDate),
	)

	return err
}

// GetByID retrieves an invoice by ID.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

	invoice, err := scanInvoice(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return invoice, nil
}

// List retrieves invoices matching the filter.
func (r *InvoiceRepository) List(ctx context.Context, filter repository.InvoiceListFilter) ([]*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1=1`
	var args []any

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	query += " ORDER BY issue_date"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*domain.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}

	return invoices, rows.Err()
}

func scanInvoice(row rowScanner) (*domain.Invoice, error) {
	var invoice domain.Invoice
	var tripIDs pq.StringArray
	var paidDate sql.NullTime

	if err := row.Scan(
		&invoice.ID,
		&invoice.ClientID,
		&invoice.ClientName,
		&tripIDs,
		&invoice.Amount,
		&invoice.Status,
		&invoice.IssueDate,
		&invoice.DueDate,
		&paidDate,
	); err != nil {
		return nil, err
	}

	invoice.TripIDs = []string(tripIDs)
	invoice.PaidDate = timeValue(paidDate)

	return &invoice, nil
}

// Ensure InvoiceRepository implements repository.InvoiceRepository.
var _ repository.InvoiceRepository = (*InvoiceRepository)(nil)
