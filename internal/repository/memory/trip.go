package memory

import (
	"context"
	"sort"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

type tripRepo struct {
	s *Store
}

func (r *tripRepo) Create(ctx context.Context, trip *domain.Trip) error {
	r.s.lock()
	defer r.s.unlock()

	r.s.data.trips[trip.ID] = copyTrip(trip)
	return nil
}

func (r *tripRepo) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	r.s.rlock()
	defer r.s.runlock()

	trip, ok := r.s.data.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyTrip(trip), nil
}

func (r *tripRepo) List(ctx context.Context, filter repository.TripListFilter) ([]*domain.Trip, error) {
	r.s.rlock()
	defer r.s.runlock()

	var trips []*domain.Trip
	for _, trip := range r.s.data.trips {
		if filter.Status != nil && trip.Status != *filter.Status {
			continue
		}
		if filter.ClientID != nil && trip.ClientID != *filter.ClientID {
			continue
		}
		if filter.DriverID != nil && trip.DriverID != *filter.DriverID {
			continue
		}
		if filter.Invoiceable && !invoiceable(trip) {
			continue
		}
		trips = append(trips, copyTrip(trip))
	}

	sort.Slice(trips, func(i, j int) bool {
		return trips[i].CreatedAt.Before(trips[j].CreatedAt)
	})
	return trips, nil
}

func (r *tripRepo) Update(ctx context.Context, trip *domain.Trip) error {
	r.s.lock()
	defer r.s.unlock()

	if _, ok := r.s.data.trips[trip.ID]; !ok {
		return repository.ErrNotFound
	}

	r.s.data.trips[trip.ID] = copyTrip(trip)
	return nil
}

func invoiceable(t *domain.Trip) bool {
	if t.Invoiced || !t.DocumentsConfirmed {
		return false
	}
	return t.Status == domain.TripStatusDelivered || t.Status == domain.TripStatusApproved
}

func copyTrip(t *domain.Trip) *domain.Trip {
	c := *t
	c.DeliveryDocuments = append([]string(nil), t.DeliveryDocuments...)
	return &c
}
