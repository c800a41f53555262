package memory

import (
	"context"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

type driverRepo struct {
	s *Store
}

func (r *driverRepo) Create(ctx context.Context, driver *domain.Driver) error {
	r.s.lock()
	defer r.s.unlock()

	for _, existing := range r.s.data.drivers {
		if existing.LicenseNumber == driver.LicenseNumber {
			return repository.ErrDuplicate
		}
	}

	r.s.data.drivers[driver.ID] = copyDriver(driver)
	return nil
}

func (r *driverRepo) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	r.s.rlock()
	defer r.s.runlock()

	driver, ok := r.s.data.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyDriver(driver), nil
}

func (r *driverRepo) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	r.s.rlock()
	defer r.s.runlock()

	drivers := make([]*domain.Driver, 0, len(r.s.data.drivers))
	for _, driver := range r.s.data.drivers {
		drivers = append(drivers, copyDriver(driver))
	}
	return drivers, nil
}

func (r *driverRepo) Update(ctx context.Context, driver *domain.Driver) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.data.drivers[driver.ID]; !ok {
		return repository.ErrNotFound
	}

	r.s.data.drivers[driver.ID] = copyDriver(driver)
	return nil
}

func copyDriver(d *domain.Driver) *domain.Driver {
	c := *d
	c.Certificates = append([]domain.Certificate(nil), d.Certificates...)
	return &c
}
