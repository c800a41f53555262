// Package memory implements repository.Store with mutex-guarded maps. It
// backs single-node deployments (the reference system keeps all entities in
// memory) and the workflow tests.
package memory

import (
	"context"
	"sync"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

type data struct {
	trucks      map[string]*domain.Truck
	drivers     map[string]*domain.Driver
	clients     map[string]*domain.Client
	trips       map[string]*domain.Trip
	submissions map[string]*domain.DocumentSubmission
	requests    map[string]*domain.TruckAssignmentRequest
	invoices    map[string]*domain.Invoice
}

// Store is the in-memory repository.Store implementation.
//
// InTx serializes the closure behind a store-wide lock, which gives the
// same observable guarantee as a database transaction for the workflow
// services: validation and mutation of an entity happen under one critical
// section, so concurrent transitions from the same source state resolve to
// exactly one winner. Services validate before mutating inside the
// closure, so an expected rejection leaves no partial writes behind.
type Store struct {
	mu   *sync.RWMutex
	data *data
	inTx bool
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		mu: &sync.RWMutex{},
		data: &data{
			trucks:      make(map[string]*domain.Truck),
			drivers:     make(map[string]*domain.Driver),
			clients:     make(map[string]*domain.Client),
			trips:       make(map[string]*domain.Trip),
			submissions: make(map[string]*domain.DocumentSubmission),
			requests:    make(map[string]*domain.TruckAssignmentRequest),
			invoices:    make(map[string]*domain.Invoice),
		},
	}
}

// Trucks returns the truck repository.
func (s *Store) Trucks() repository.TruckRepository { return &truckRepo{s} }

// Drivers returns the driver repository.
func (s *Store) Drivers() repository.DriverRepository { return &driverRepo{s} }

// Clients returns the client repository.
func (s *Store) Clients() repository.ClientRepository { return &clientRepo{s} }

// Trips returns the trip repository.
func (s *Store) Trips() repository.TripRepository { return &tripRepo{s} }

// Submissions returns the document submission repository.
func (s *Store) Submissions() repository.SubmissionRepository { return &submissionRepo{s} }

// Requests returns the truck assignment request repository.
func (s *Store) Requests() repository.RequestRepository { return &requestRepo{s} }

// Invoices returns the invoice repository.
func (s *Store) Invoices() repository.InvoiceRepository { return &invoiceRepo{s} }

// InTx runs fn under the store-wide write lock. Nested calls run in the
// enclosing critical section.
func (s *Store) InTx(_ context.Context, fn func(repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(&Store{mu: s.mu, data: s.data, inTx: true})
}

func (s *Store) lock() {
	if !s.inTx {
		s.mu.Lock()
	}
}

func (s *Store) unlock() {
	if !s.inTx {
		s.mu.Unlock()
	}
}

func (s *Store) rlock() {
	if !s.inTx {
		s.mu.RLock()
	}
}

func (s *Store) runlock() {
	if !s.inTx {
		s.mu.RUnlock()
	}
}

// Ensure Store implements repository.Store.
var _ repository.Store = (*Store)(nil)
