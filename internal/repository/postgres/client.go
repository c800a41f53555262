package postgres

import (
	"context"
	"database/sql"
	"errors"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

// ClientRepository is a PostgreSQL implementation of repository.ClientRepository.
type ClientRepository struct {
	q Querier
}

// NewClientRepository creates a new PostgreSQL client repository.
func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{q: db}
}

// NewClientRepositoryWithTx creates a client repository using a transaction.
func NewClientRepositoryWithTx(tx *sql.Tx) *ClientRepository {
	return &ClientRepository{q: tx}
}

const clientColumns = `id, company_name, tax_id, contact_person, phone, email, city, created_at`

// Create persists a new client.
func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		client.ID,
		client.CompanyName,
		client.TaxID,
		client.ContactPerson,
		client.Phone,
		client.Email,
		client.City,
		client.CreatedAt,
	)

	return err
}

// GetByID retrieves a client by ID.
func (r *ClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	var client domain.Client
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&client.ID,
		&client.CompanyName,
		&client.TaxID,
		&client.ContactPerson,
		&client.Phone,
		&client.Email,
		&client.City,
		&client.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &client, nil
}

// GetAll retrieves all clients.
func (r *ClientRepository) GetAll(ctx context.Context) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY company_name`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		var client domain.Client
		if err := rows.Scan(
			&client.ID,
			&client.CompanyName,
			&client.TaxID,
			&client.ContactPerson,
			&client.Phone,
			&client.Email,
			&client.City,
			&client.CreatedAt,
		); err != nil {
			return nil, err
		}
		clients = append(clients, &client)
	}

	return clients, rows.Err()
}

// Ensure ClientRepository implements repository.ClientRepository.
var _ repository.ClientRepository = (*ClientRepository)(nil)
