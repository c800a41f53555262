package memory

import (
	"context"
	"sort"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

type submissionRepo struct {
	s *Store
}

func (r *submissionRepo) Create(ctx context.Context, sub *domain.DocumentSubmission) error {
	r.s.lock()
	defer r.s.unlock()

	r.s.data.submissions[sub.ID] = copySubmission(sub)
	return nil
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*domain.DocumentSubmission, error) {
	r.s.rlock()
	defer r.s.runlock()

	sub, ok := r.s.data.submissions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copySubmission(sub), nil
}

func (r *submissionRepo) List(ctx context.Context, filter repository.SubmissionListFilter) ([]*domain.DocumentSubmission, error) {
	r.s.rlock()
	defer r.s.runlock()

	var subs []*domain.DocumentSubmission
	for _, sub := range r.s.data.submissions {
		if filter.Status != nil && sub.Status != *filter.Status {
			continue
		}
		if filter.SubjectType != nil && sub.SubjectType != *filter.SubjectType {
			continue
		}
		if filter.SubjectID != nil && sub.SubjectID != *filter.SubjectID {
			continue
		}
		subs = append(subs, copySubmission(sub))
	}

	sort.Slice(subs, func(i, j int) bool {
		return subs[i].SubmittedAt.Before(subs[j].SubmittedAt)
	})
	return subs, nil
}

func (r *submissionRepo) Update(ctx context.Context, sub *domain.DocumentSubmission) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.data.submissions[sub.ID]; !ok {
		return repository.ErrNotFound
	}

	r.s.data.submissions[sub.ID] = copySubmission(sub)
	return nil
}

func copySubmission(s *domain.DocumentSubmission) *domain.DocumentSubmission {
	c := *s
	return &c
}
