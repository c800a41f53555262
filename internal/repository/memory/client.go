package memory

import (
	"context"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

type clientRepo struct {
	s *Store
}

func (r *clientRepo) Create(ctx context.Context, client *domain.Client) error {
	r.s.lock()
	defer r.s.unlock()

	r.s.data.clients[client.ID] = copyClient(client)
	return nil
}

func (r *clientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	r.s.rlock()
	defer r.s.runlock()

	client, ok := r.s.data.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyClient(client), nil
}

func (r *clientRepo) GetAll(ctx context.Context) ([]*domain.Client, error) {
	r.s.rlock()
	defer r.s.runlock()

	clients := make([]*domain.Client, 0, len(r.s.data.clients))
	for _, client := range r.s.data.clients {
		clients = append(clients, copyClient(client))
	}
	return clients, nil
}

func copyClient(c *domain.Client) *domain.Client {
	cp := *c
	return &cp
}
