package repository

import (
	"context"

	"naklos/internal/domain"
)

// SubmissionListFilter narrows List results. Nil fields are ignored.
type SubmissionListFilter struct {
	Status      *domain.SubmissionStatus
	SubjectType *domain.SubjectType
	SubjectID   *string
}

// SubmissionRepository defines the persistence operations for document
// submissions.
type SubmissionRepository interface {
	// Create persists a new submission.
	Create(ctx context.Context, sub *domain.DocumentSubmission) error

	// GetByID retrieves a submission by ID.
	GetByID(ctx context.Context, id string) (*domain.DocumentSubmission, error)

	// List retrieves submissions matching the filter.
	List(ctx context.Context, filter SubmissionListFilter) ([]*domain.DocumentSubmission, error)

	// Update updates an existing submission.
	Update(ctx context.Context, sub *domain.DocumentSubmission) error
}
