package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

// SubmissionRepository is a PostgreSQL implementation of
// repository.SubmissionRepository.
type SubmissionRepository struct {
	q Querier
}

// NewSubmissionRepository creates a new PostgreSQL submission repository.
func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{q: db}
}

// NewSubmissionRepositoryWithTx creates a submission repository using a transaction.
func NewSubmissionRepositoryWithTx(tx *sql.Tx) *SubmissionRepository {
	return &SubmissionRepository{q: tx}
}

const submissionColumns = `id, category, subject_type, subject_id, subject_name, submitted_by,
	image_ref, suggested_expiry, confirmed_expiry, status, submitted_at, reviewed_at, reviewed_by,
	rejection_reason, rejection_note, previous_image_ref, previous_expiry`

// Create persists a new submission.
func (r *SubmissionRepository) Create(ctx context.Context, sub *domain.DocumentSubmission) error {
	query := `
		INSERT INTO document_submissions (` + submissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.q.ExecContext(ctx, query,
		sub.ID,
		sub.Category,
		sub.SubjectType,
		sub.SubjectID,
		sub.SubjectName,
		sub.SubmittedBy,
		sub.ImageRef,
		nullTime(sub.SuggestedExpiry),
		nullTime(sub.ConfirmedExpiry),
		sub.Status,
		sub.SubmittedAt,
		nullTime(sub.ReviewedAt),
		sub.ReviewedBy,
		sub.RejectionReason,
		sub.RejectionNote,
		sub.PreviousImageRef,
		nullTime(sub.PreviousExpiry),
	)

	return err
}

// GetByID retrieves a submission by ID.
func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*domain.DocumentSubmission, error) {
	query := `SELECT ` + submissionColumns + ` FROM document_submissions WHERE id = $1`

	sub, err := scanSubmission(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}

// List retrieves submissions matching the filter.
func (r *SubmissionRepository) List(ctx context.Context, filter repository.SubmissionListFilter) ([]*domain.DocumentSubmission, error) {
	query := `SELECT ` + submissionColumns + ` FROM document_submissions WHERE 1=1`
	var args []any

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.SubjectType != nil {
		args = append(args, *filter.SubjectType)
		query += fmt.Sprintf(" AND subject_type = $%d", len(args))
	}
	if filter.SubjectID != nil {
		args = append(args, *filter.SubjectID)
		query += fmt.Sprintf(" AND subject_id = $%d", len(args))
	}
	query += " ORDER BY submitted_at"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*domain.DocumentSubmission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

// Update updates an existing submission.
func (r *SubmissionRepository) Update(ctx context.Context, sub *domain.DocumentSubmission) error {
	query := `
		UPDATE document_submissions
		SET confirmed_expiry = $1, status = $2, reviewed_at = $3, reviewed_by = $4,
			rejection_reason = $5, rejection_note = $6
		WHERE id = $7
	`

	result, err := r.q.ExecContext(ctx, query,
		nullTime(sub.ConfirmedExpiry),
		sub.Status,
		nullTime(sub.ReviewedAt),
		sub.ReviewedBy,
		sub.RejectionReason,
		sub.RejectionNote,
		sub.ID,
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

func scanSubmission(row rowScanner) (*domain.DocumentSubmission, error) {
	var sub domain.DocumentSubmission
	var suggested, confirmed, reviewedAt, previousExpiry sql.NullTime

	if err := row.Scan(
		&sub.ID,
		&sub.Category,
		&sub.SubjectType,
		&sub.SubjectID,
		&sub.SubjectName,
		&sub.SubmittedBy,
		&sub.ImageRef,
		&suggested,
		&confirmed,
		&sub.Status,
		&sub.SubmittedAt,
		&reviewedAt,
		&sub.ReviewedBy,
		&sub.RejectionReason,
		&sub.RejectionNote,
		&sub.PreviousImageRef,
		&previousExpiry,
	); err != nil {
		return nil, err
	}

	sub.SuggestedExpiry = timeValue(suggested)
	sub.ConfirmedExpiry = timeValue(confirmed)
	sub.ReviewedAt = timeValue(reviewedAt)
	sub.PreviousExpiry = timeValue(previousExpiry)

	return &sub, nil
}

// Ensure SubmissionRepository implements repository.SubmissionRepository.
var _ repository.SubmissionRepository = (*SubmissionRepository)(nil)
