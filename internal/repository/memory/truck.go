package memory

import (
	"context"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

type truckRepo struct {
	s *Store
}

func (r *truckRepo) Create(ctx context.Context, truck *domain.Truck) error {
	r.s.lock()
	defer r.s.unlock()

	for _, existing := range r.s.data.trucks {
		if existing.PlateNumber == truck.PlateNumber {
			return repository.ErrDuplicate
		}
	}

	r.s.data.trucks[truck.ID] = copyTruck(truck)
	return nil
}

func (r *truckRepo) GetByID(ctx context.Context, id string) (*domain.Truck, error) {
	r.s.rlock()
	defer r.s.runlock()

	truck, ok := r.s.data.trucks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyTruck(truck), nil
}

func (r *truckRepo) GetAll(ctx context.Context) ([]*domain.Truck, error) {
	r.s.rlock()
	defer r.s.runlock()

	trucks := make([]*domain.Truck, 0, len(r.s.data.trucks))
	for _, truck := range r.s.data.trucks {
		trucks = append(trucks, copyTruck(truck))
	}
	return trucks, nil
}

func (r *truckRepo) GetUnassigned(ctx context.Context) ([]*domain.Truck, error) {
	r.s.rlock()
	defer r.s.runlock()

	var trucks []*domain.Truck
	for _, truck := range r.s.data.trucks {
		if !truck.Assigned() {
			trucks = append(trucks, copyTruck(truck))
		}
	}
	return trucks, nil
}

func (r *truckRepo) Update(ctx context.Context, truck *domain.Truck) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.data.trucks[truck.ID]; !ok {
		return repository.ErrNotFound
	}

	r.s.data.trucks[truck.ID] = copyTruck(truck)
	return nil
}

func copyTruck(t *domain.Truck) *domain.Truck {
	c := *t
	return &c
}
