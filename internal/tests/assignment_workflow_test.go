package tests

import (
	"context"
	"errors"
	"sync"
	"testing"

	"naklos/internal/domain"
	"naklos/internal/service"
)

func TestAssignmentRequest_OnePendingPerDriver(t *testing.T) {
	t.Parallel()

	store := newStore()
	driver := seedDriver(t, store, &domain.Driver{Name: "Ali"})
	truck := seedTruck(t, store, &domain.Truck{PlateNumber: "34 TR 1", Type: "box"})

	svc := service.NewAssignmentService(store, nil, nil)

	if _, err := svc.Request(context.Background(), driver.ID, truck.ID); err != nil {
		t.Fatalf("first request: %v", err)
	}

	_, err := svc.Request(context.Background(), driver.ID, truck.ID)
	if !errors.Is(err, service.ErrDuplicateRequest) {
		t.Fatalf("second request: got %v, want ErrDuplicateRequest", err)
	}
}

func TestAssignmentRequest_AllowedAfterReview(t *testing.T) {
	t.Parallel()

	store := newStore()
	driver := seedDriver(t, store, &domain.Driver{Name: "Ali"})
	truck := seedTruck(t, store, &domain.Truck{PlateNumber: "34 TR 1", Type: "box"})

	svc := service.NewAssignmentService(store, nil, nil)

	req, err := svc.Request(context.Background(), driver.ID, truck.ID)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := svc.Reject(context.Background(), req.ID, "truck reserved for long haul", "manager-1"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	// The rejection closed the pending slot; a new request may open.
	if _, err := svc.Request(context.Background(), driver.ID, truck.ID); err != nil {
		t.Fatalf("request after rejection: %v", err)
	}
}

func TestAssignmentApprove_ReciprocalLinks(t *testing.T) {
	t.Parallel()

	store := newStore()
	driver := seedDriver(t, store, &domain.Driver{Name: "Ali"})
	truck := seedTruck(t, store, &domain.Truck{PlateNumber: "34 TR 1", Type: "box"})

	svc := service.NewAssignmentService(store, nil, nil)
	req, err := svc.Request(context.Background(), driver.ID, truck.ID)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	approved, err := svc.Approve(context.Background(), req.ID, "", "manager-1")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	if approved.Status != domain.RequestStatusApproved {
		t.Errorf("status = %s, want APPROVED", approved.Status)
	}
	if approved.AssignedTruckID != truck.ID {
		t.Errorf("assigned truck = %s, want preferred %s", approved.AssignedTruckID, truck.ID)
	}

	gotDriver := getDriver(t, store, driver.ID)
	gotTruck := getTruck(t, store, truck.ID)
	if gotDriver.AssignedTruckID != truck.ID {
		t.Errorf("driver.AssignedTruckID = %s, want %s", gotDriver.AssignedTruckID, truck.ID)
	}
	if gotDriver.AssignedTruckPlate != truck.PlateNumber {
		t.Errorf("driver.AssignedTruckPlate = %s, want %s", gotDriver.AssignedTruckPlate, truck.PlateNumber)
	}
	if gotTruck.AssignedDriverID != driver.ID {
		t.Errorf("truck.AssignedDriverID = %s, want %s", gotTruck.AssignedDriverID, driver.ID)
	}
	if gotTruck.AssignedDriverName != driver.Name {
		t.Errorf("truck.AssignedDriverName = %s, want %s", gotTruck.AssignedDriverName, driver.Name)
	}
}

func TestAssignmentApprove_ReviewerSubstitutesTruck(t *testing.T) {
	t.Parallel()

	store := newStore()
	driver := seedDriver(t, store, &domain.Driver{Name: "Ali"})
	preferred := seedTruck(t, store, &domain.Truck{PlateNumber: "34 TR 1", Type: "box"})
	substitute := seedTruck(t, store, &domain.Truck{PlateNumber: "34 TR 2", Type: "flatbed"})

	svc := service.NewAssignmentService(store, nil, nil)
	req, err := svc.Request(context.Background(), driver.ID, preferred.ID)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	approved, err := svc.Approve(context.Background(), req.ID, substitute.ID, "manager-1")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	if approved.AssignedTruckID != substitute.ID {
		t.Errorf("assigned truck = %s, want substitute %s", approved.AssignedTruckID, substitute.ID)
	}
	if approved.PreferredTruckID != preferred.ID {
		t.Errorf("preferred truck overwritten: %s", approved.PreferredTruckID)
	}

	if getTruck(t, store, preferred.ID).Assigned() {
		t.Error("preferred truck must stay unassigned")
	}
	if !getTruck(t, store, substitute.ID).Assigned() {
		t.Error("substitute truck must be assigned")
	}
}

func TestAssignmentApprove_NoUnassignedTrucks(t *testing.T) {
	t.Parallel()

	store := newStore()
	driverA := seedDriver(t, store, &domain.Driver{Name: "Ali"})
	driverB := seedDriver(t, store, &domain.Driver{Name: "Veli"})
	truck := seedTruck(t, store, &domain.Truck{PlateNumber: "34 TR 1", Type: "box"})

	svc := service.NewAssignmentService(store, nil, nil)

	reqA, err := svc.Request(context.Background(), driverA.ID, truck.ID)
	if err != nil {
		t.Fatalf("request A: %v", err)
	}
	reqB, err := svc.Request(context.Background(), driverB.ID, truck.ID)
	if err != nil {
		t.Fatalf("request B: %v", err)
	}

	if _, err := svc.Approve(context.Background(), reqA.ID, "", "manager-1"); err != nil {
		t.Fatalf("approve A: %v", err)
	}

	// The fleet's only truck is taken now.
	_, err = svc.Approve(context.Background(), reqB.ID, "", "manager-1")
	if !errors.Is(err, service.ErrNoAvailableTrucks) {
		t.Fatalf("approve B: got %v, want ErrNoAvailableTrucks", err)
	}
}

func TestAssignmentApprove_PreferredTruckTaken(t *testing.T) {
	t.Parallel()

	store := newStore()
	driverA := seedDriver(t, store, &domain.Driver{Name: "Ali"})
	driverB := seedDriver(t, store, &domain.Driver{Name: "Veli"})
	wanted := seedTruck(t, store, &domain.Truck{PlateNumber: "34 TR 1", Type: "box"})
	seedTruck(t, store, &domain.Truck{PlateNumber: "34 TR 2", Type: "box"})

	svc := service.NewAssignmentService(store, nil, nil)

	reqA, err := svc.Request(context.Background(), driverA.ID, wanted.ID)
	if err != nil {
		t.Fatalf("request A: %v", err)
	}
	reqB, err := svc.Request(context.Background(), driverB.ID, wanted.ID)
	if err != nil {
		t.Fatalf("request B: %v", err)
	}

	if _, err := svc.Approve(context.Background(), reqA.ID, "", "manager-1"); err != nil {
		t.Fatalf("approve A: %v", err)
	}

	// Another truck is free, but the one B prefers is taken; the reviewer
	// must pick explicitly.
	_, err = svc.Approve(context.Background(), reqB.ID, "", "manager-1")
	if !errors.Is(err, service.ErrTruckUnavailable) {
		t.Fatalf("approve B: got %v, want ErrTruckUnavailable", err)
	}
}

func TestAssignmentReject_RequiresNote(t *testing.T) {
	t.Parallel()

	store := newStore()
	driver := seedDriver(t, store, &domain.Driver{Name: "Ali"})
	truck := seedTruck(t, store, &domain.Truck{PlateNumber: "34 TR 1", Type: "box"})

	svc := service.NewAssignmentService(store, nil, nil)
	req, err := svc.Request(context.Background(), driver.ID, truck.ID)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	_, err = svc.Reject(context.Background(), req.ID, "", "manager-1")
	var vErr *service.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for missing note, got %v", err)
	}
}

func TestAssignmentReview_ConcurrentExactlyOneWinner(t *testing.T) {
	t.Parallel()

	store := newStore()
	driver := seedDriver(t, store, &domain.Driver{Name: "Ali"})
	truck := seedTruck(t, store, &domain.Truck{PlateNumber: "34 TR 1", Type: "box"})

	svc := service.NewAssignmentService(store, nil, nil)
	req, err := svc.Request(context.Background(), driver.ID, truck.ID)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, results[i] = svc.Approve(context.Background(), req.ID, "", "manager-1")
			} else {
				_, results[i] = svc.Reject(context.Background(), req.ID, "already handled", "manager-2")
			}
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range results {
		if err == nil {
			successes++
		} else if !errors.Is(err, service.ErrInvalidTransition) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("successes = %d, want exactly 1", successes)
	}
}

func TestAssignmentApprove_LockNotAcquired(t *testing.T) {
	t.Parallel()

	store := newStore()
	driver := seedDriver(t, store, &domain.Driver{Name: "Ali"})
	truck := seedTruck(t, store, &domain.Truck{PlateNumber: "34 TR 1", Type: "box"})

	lock := NewMockLockStore()
	lock.FailAcquire = true

	svc := service.NewAssignmentService(store, lock, nil)
	req, err := svc.Request(context.Background(), driver.ID, truck.ID)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	if _, err := svc.Approve(context.Background(), req.ID, "", "manager-1"); err == nil {
		t.Fatal("expected error when review lock is held elsewhere")
	}
	if lock.AcquireCallCount != 1 {
		t.Errorf("acquire calls = %d, want 1", lock.AcquireCallCount)
	}
}
