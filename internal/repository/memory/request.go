package memory

import (
	"context"
	"sort"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

type requestRepo struct {
	s *Store
}

func (r *requestRepo) Create(ctx context.Context, req *domain.TruckAssignmentRequest) error {
	r.s.lock()
	defer r.s.unlock()

	r.s.data.requests[req.ID] = copyRequest(req)
	return nil
}

func (r *requestRepo) GetByID(ctx context.Context, id string) (*domain.TruckAssignmentRequest, error) {
	r.s.rlock()
	defer r.s.runlock()

	req, ok := r.s.data.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyRequest(req), nil
}

func (r *requestRepo) GetPendingByDriverID(ctx context.Context, driverID string) (*domain.TruckAssignmentRequest, error) {
	r.s.rlock()
	defer r.s.runlock()

	for _, req := range r.s.data.requests {
		if req.DriverID == driverID && req.Status == domain.RequestStatusPending {
			return copyRequest(req), nil
		}
	}
	return nil, nil
}

func (r *requestRepo) List(ctx context.Context, filter repository.RequestListFilter) ([]*domain.TruckAssignmentRequest, error) {
	r.s.rlock()
	defer r.s.runlock()

	var reqs []*domain.TruckAssignmentRequest
	for _, req := range r.s.data.requests {
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		if filter.DriverID != nil && req.DriverID != *filter.DriverID {
			continue
		}
		reqs = append(reqs, copyRequest(req))
	}

	sort.Slice(reqs, func(i, j int) bool {
		return reqs[i].RequestedAt.Before(reqs[j].RequestedAt)
	})
	return reqs, nil
}

func (r *requestRepo) Update(ctx context.Context, req *domain.TruckAssignmentRequest) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.data.requests[req.ID]; !ok {
		return repository.ErrNotFound
	}

	r.s.data.requests[req.ID] = copyRequest(req)
	return nil
}

func copyRequest(req *domain.TruckAssignmentRequest) *domain.TruckAssignmentRequest {
	c := *req
	return &c
}
