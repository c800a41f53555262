package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"naklos/internal/domain"
	"naklos/internal/repository"
	"naklos/internal/repository/memory"
)

// Fixtures for the workflow tests. Everything runs against the in-memory
// store, which gives the same transactional guarantees as the PostgreSQL
// backend.

func newStore() *memory.Store {
	return memory.NewStore()
}

func seedTruck(t *testing.T, store repository.Store, truck *domain.Truck) *domain.Truck {
	t.Helper()
	if truck.ID == "" {
		truck.ID = "truck-" + truck.PlateNumber
	}
	if truck.Status == "" {
		truck.Status = domain.TruckStatusAvailable
	}
	if err := store.Trucks().Create(context.Background(), truck); err != nil {
		t.Fatalf("seed truck: %v", err)
	}
	return truck
}

func seedDriver(t *testing.T, store repository.Store, driver *domain.Driver) *domain.Driver {
	t.Helper()
	if driver.ID == "" {
		driver.ID = "driver-" + driver.Name
	}
	if driver.LicenseNumber == "" {
		driver.LicenseNumber = "LIC-" + driver.ID
	}
	if driver.Status == "" {
		driver.Status = domain.DriverStatusAvailable
	}
	if err := store.Drivers().Create(context.Background(), driver); err != nil {
		t.Fatalf("seed driver: %v", err)
	}
	return driver
}

func seedClient(t *testing.T, store repository.Store, client *domain.Client) *domain.Client {
	t.Helper()
	if client.ID == "" {
		client.ID = "client-" + client.CompanyName
	}
	if err := store.Clients().Create(context.Background(), client); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return client
}

func getTrip(t *testing.T, store repository.Store, id string) *domain.Trip {
	t.Helper()
	trip, err := store.Trips().GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get trip %s: %v", id, err)
	}
	return trip
}

func getDriver(t *testing.T, store repository.Store, id string) *domain.Driver {
	t.Helper()
	driver, err := store.Drivers().GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get driver %s: %v", id, err)
	}
	return driver
}

func getTruck(t *testing.T, store repository.Store, id string) *domain.Truck {
	t.Helper()
	truck, err := store.Trucks().GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get truck %s: %v", id, err)
	}
	return truck
}

// daysFromNow returns a date the given number of days ahead, at noon so
// date truncation cannot flip the day.
func daysFromNow(now time.Time, days int) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.UTC).AddDate(0, 0, days)
}

// MockLockStore is an in-memory lock store with call counters and error
// injection, mirroring the Redis implementation's SetNX semantics.
type MockLockStore struct {
	mu          sync.Mutex
	held        map[string]bool
	FailAcquire bool

	AcquireCallCount int32
	ReleaseCallCount int32
}

// NewMockLockStore creates a new MockLockStore.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{held: make(map[string]bool)}
}

func (m *MockLockStore) acquire(key string) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.FailAcquire {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[key] {
		return false, nil
	}
	m.held[key] = true
	return true, nil
}

func (m *MockLockStore) release(key string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, key)
	return nil
}

func (m *MockLockStore) AcquireDriverLock(_ context.Context, driverID string, _ time.Duration) (bool, error) {
	return m.acquire("driver:" + driverID)
}

func (m *MockLockStore) ReleaseDriverLock(_ context.Context, driverID string) error {
	return m.release("driver:" + driverID)
}

func (m *MockLockStore) AcquireInvoiceLock(_ context.Context, clientID string, _ time.Duration) (bool, error) {
	return m.acquire("invoice:" + clientID)
}

func (m *MockLockStore) ReleaseInvoiceLock(_ context.Context, clientID string) error {
	return m.release("invoice:" + clientID)
}
