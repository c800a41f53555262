package repository

import "context"

// Store bundles the entity repositories behind a single transactional
// boundary. Workflow services receive a Store explicitly instead of
// reaching for shared state, so every transition remains testable against
// the in-memory implementation.
type Store interface {
	Trucks() TruckRepository
	Drivers() DriverRepository
	Clients() ClientRepository
	Trips() TripRepository
	Submissions() SubmissionRepository
	Requests() RequestRepository
	Invoices() InvoiceRepository

	// InTx runs fn against a store view whose writes commit or roll back
	// together. A transition and its cross-entity side effects always go
	// through InTx so no reader can observe a half-applied update.
	InTx(ctx context.Context, fn func(Store) error) error
}
