package tests

import (
	"context"
	"errors"
	"sort"
	"testing"

	"naklos/internal/domain"
	"naklos/internal/repository/memory"
	"naklos/internal/service"
)

func plannedTrip(t *testing.T, store *serviceStore) *domain.Trip {
	t.Helper()
	trip, err := store.trips.Create(context.Background(), service.CreateTripRequest{
		Planned:          true,
		ClientID:         store.client.ID,
		OriginCity:       "Istanbul",
		DestinationCity:  "Ankara",
		CargoDescription: "industrial pumps",
		Revenue:          1500,
	})
	if err != nil {
		t.Fatalf("create planned trip: %v", err)
	}
	return trip
}

// serviceStore bundles a seeded store with the services under test.
type serviceStore struct {
	store  *memory.Store
	trips  *service.TripService
	client *domain.Client
	driver *domain.Driver
	truck  *domain.Truck
}

func newTripFixture(t *testing.T) *serviceStore {
	t.Helper()
	store := newStore()
	return &serviceStore{
		store:  store,
		trips:  service.NewTripService(store, nil),
		client: seedClient(t, store, &domain.Client{CompanyName: "Acme Lojistik", TaxID: "111"}),
		driver: seedDriver(t, store, &domain.Driver{Name: "Ali"}),
		truck:  seedTruck(t, store, &domain.Truck{PlateNumber: "34 TR 1", Type: "box"}),
	}
}

func TestTripCreate_PlannedStartsAtCreated(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t)
	trip := plannedTrip(t, f)

	if trip.Status != domain.TripStatusCreated {
		t.Errorf("status = %s, want CREATED", trip.Status)
	}
	if !trip.IsPlanned {
		t.Error("IsPlanned must be true")
	}
	if trip.ClientName != f.client.CompanyName {
		t.Errorf("client name = %q, want %q", trip.ClientName, f.client.CompanyName)
	}
}

func TestTripCreate_PodFirstStartsAtDelivered(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t)
	trip, err := f.trips.Create(context.Background(), service.CreateTripRequest{
		DriverID:                 f.driver.ID,
		DriverEnteredDestination: "Izmir depot",
		DeliveryDocuments:        []string{"pod-1", "pod-2"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if trip.Status != domain.TripStatusDelivered {
		t.Errorf("status = %s, want DELIVERED", trip.Status)
	}
	if trip.DeliveredAt.IsZero() {
		t.Error("DeliveredAt must be set")
	}
	if trip.IsPlanned {
		t.Error("IsPlanned must be false in the POD-first flow")
	}
}

func TestTripCreate_PodFirstValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		req  service.CreateTripRequest
		want string
	}{
		{
			name: "no documents",
			req:  service.CreateTripRequest{DriverEnteredDestination: "Izmir"},
			want: "delivery_documents",
		},
		{
			name: "too many documents",
			req: service.CreateTripRequest{
				DriverEnteredDestination: "Izmir",
				DeliveryDocuments:        []string{"a", "b", "c", "d"},
			},
			want: "delivery_documents",
		},
		{
			name: "no destination",
			req:  service.CreateTripRequest{DeliveryDocuments: []string{"a"}},
			want: "driver_entered_destination",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newTripFixture(t)
			_, err := f.trips.Create(context.Background(), tc.req)

			var vErr *service.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			found := false
			for _, field := range vErr.Fields {
				if field == tc.want {
					found = true
				}
			}
			if !found {
				t.Errorf("fields %v do not include %q", vErr.Fields, tc.want)
			}
		})
	}
}

func TestTripTake_RequiresDriverAndTruck(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t)
	trip := plannedTrip(t, f)

	_, err := f.trips.Take(context.Background(), trip.ID, "", "")
	var vErr *service.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	got := append([]string(nil), vErr.Fields...)
	sort.Strings(got)
	if len(got) != 2 || got[0] != "driver_id" || got[1] != "truck_id" {
		t.Errorf("fields = %v, want [driver_id truck_id]", vErr.Fields)
	}
}

func TestTripTake_FlipsCrewStatus(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t)
	trip := plannedTrip(t, f)

	taken, err := f.trips.Take(context.Background(), trip.ID, f.driver.ID, f.truck.ID)
	if err != nil {
		t.Fatalf("take: %v", err)
	}

	if taken.Status != domain.TripStatusInProgress {
		t.Errorf("status = %s, want IN_PROGRESS", taken.Status)
	}
	if getDriver(t, f.store, f.driver.ID).Status != domain.DriverStatusOnTrip {
		t.Error("driver must be ON_TRIP")
	}
	if getTruck(t, f.store, f.truck.ID).Status != domain.TruckStatusInTransit {
		t.Error("truck must be IN_TRANSIT")
	}
}

func TestTripTake_BusyCrewRejected(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t)
	first := plannedTrip(t, f)
	second := plannedTrip(t, f)

	if _, err := f.trips.Take(context.Background(), first.ID, f.driver.ID, f.truck.ID); err != nil {
		t.Fatalf("take first: %v", err)
	}

	_, err := f.trips.Take(context.Background(), second.ID, f.driver.ID, f.truck.ID)
	if !errors.Is(err, service.ErrDriverUnavailable) {
		t.Fatalf("take second: got %v, want ErrDriverUnavailable", err)
	}
}

func TestTripDeliver_ReleasesCrewAndCapsDocuments(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t)
	trip := plannedTrip(t, f)
	if _, err := f.trips.Take(context.Background(), trip.ID, f.driver.ID, f.truck.ID); err != nil {
		t.Fatalf("take: %v", err)
	}

	// Over the cap.
	_, err := f.trips.UploadDeliveryDocuments(context.Background(), trip.ID, []string{"a", "b", "c", "d"})
	var vErr *service.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for 4 documents, got %v", err)
	}

	delivered, err := f.trips.UploadDeliveryDocuments(context.Background(), trip.ID, []string{"pod-1"})
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if delivered.Status != domain.TripStatusDelivered {
		t.Errorf("status = %s, want DELIVERED", delivered.Status)
	}

	if getDriver(t, f.store, f.driver.ID).Status != domain.DriverStatusAvailable {
		t.Error("driver must be released to AVAILABLE")
	}
	if getTruck(t, f.store, f.truck.ID).Status != domain.TruckStatusAvailable {
		t.Error("truck must be released to AVAILABLE")
	}
}

func TestTripApprove_MissingFieldsListedTogether(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t)

	// POD-first trip: client, truck, cargo and revenue all still missing.
	trip, err := f.trips.Create(context.Background(), service.CreateTripRequest{
		DriverID:                 f.driver.ID,
		DriverEnteredDestination: "Izmir depot",
		DeliveryDocuments:        []string{"pod-1"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.trips.Approve(context.Background(), service.ApproveTripRequest{TripID: trip.ID, ReviewedBy: "manager-1"})
	var vErr *service.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	got := append([]string(nil), vErr.Fields...)
	sort.Strings(got)
	want := []string{"cargo_description", "client_id", "revenue", "truck_id"}
	if len(got) != len(want) {
		t.Fatalf("fields = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fields = %v, want %v", got, want)
		}
	}
}

func TestTripApprove_EachMissingFieldNamedAlone(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		want   string
		mutate func(req *service.CreateTripRequest)
	}{
		{name: "client", want: "client_id", mutate: func(req *service.CreateTripRequest) { req.ClientID = "" }},
		{name: "driver", want: "driver_id", mutate: func(req *service.CreateTripRequest) { req.DriverID = "" }},
		{name: "truck", want: "truck_id", mutate: func(req *service.CreateTripRequest) { req.TruckID = "" }},
		{name: "cargo", want: "cargo_description", mutate: func(req *service.CreateTripRequest) { req.CargoDescription = "" }},
		{name: "revenue", want: "revenue", mutate: func(req *service.CreateTripRequest) { req.Revenue = 0 }},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newTripFixture(t)

			// POD-first trip carrying every approval field except one.
			req := service.CreateTripRequest{
				ClientID:                 f.client.ID,
				DriverID:                 f.driver.ID,
				TruckID:                  f.truck.ID,
				CargoDescription:         "steel coils",
				Revenue:                  1200,
				DriverEnteredDestination: "Izmir depot",
				DeliveryDocuments:        []string{"pod-1"},
			}
			tc.mutate(&req)

			trip, err := f.trips.Create(context.Background(), req)
			if err != nil {
				t.Fatalf("create: %v", err)
			}

			_, err = f.trips.Approve(context.Background(), service.ApproveTripRequest{TripID: trip.ID, ReviewedBy: "manager-1"})
			var vErr *service.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(vErr.Fields) != 1 || vErr.Fields[0] != tc.want {
				t.Fatalf("fields = %v, want [%s]", vErr.Fields, tc.want)
			}
		})
	}
}

func TestTripApprove_LateFillInsComplete(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t)
	trip, err := f.trips.Create(context.Background(), service.CreateTripRequest{
		DriverID:                 f.driver.ID,
		TruckID:                  f.truck.ID,
		CargoDescription:         "textiles",
		DriverEnteredDestination: "Izmir depot",
		DeliveryDocuments:        []string{"pod-1"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	approved, err := f.trips.Approve(context.Background(), service.ApproveTripRequest{
		TripID:     trip.ID,
		ClientID:   f.client.ID,
		Revenue:    2000,
		Expenses:   &domain.TripExpenses{Fuel: 300, Tolls: 50},
		ReviewedBy: "manager-1",
	})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	if approved.Status != domain.TripStatusApproved {
		t.Errorf("status = %s, want APPROVED", approved.Status)
	}
	if !approved.ApprovedByManager {
		t.Error("ApprovedByManager must be set")
	}
	if approved.Revenue != 2000 {
		t.Errorf("revenue = %v, want 2000", approved.Revenue)
	}
	if approved.Expenses.Total() != 350 {
		t.Errorf("expenses total = %v, want 350", approved.Expenses.Total())
	}
	// POD-first: manager approval does not stand in for the separate
	// document confirmation.
	if approved.DocumentsConfirmed {
		t.Error("DocumentsConfirmed must stay false in the POD-first flow")
	}
}

func TestTripApprove_PlannedFlowConfirmsDocuments(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t)
	trip := plannedTrip(t, f)
	if _, err := f.trips.Take(context.Background(), trip.ID, f.driver.ID, f.truck.ID); err != nil {
		t.Fatalf("take: %v", err)
	}
	if _, err := f.trips.UploadDeliveryDocuments(context.Background(), trip.ID, []string{"pod-1"}); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	approved, err := f.trips.Approve(context.Background(), service.ApproveTripRequest{TripID: trip.ID, ReviewedBy: "manager-1"})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	if !approved.DocumentsConfirmed {
		t.Error("planned-flow approval must confirm documents in the same action")
	}
}

func TestTripConfirmDocuments_RequiresDelivery(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t)
	trip := plannedTrip(t, f)

	_, err := f.trips.ConfirmDocuments(context.Background(), trip.ID)
	if !errors.Is(err, service.ErrInvalidTransition) {
		t.Fatalf("confirm on CREATED: got %v, want ErrInvalidTransition", err)
	}
}

func TestTripCancel_OnlyEarlyStates(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t)

	created := plannedTrip(t, f)
	if _, err := f.trips.Cancel(context.Background(), created.ID); err != nil {
		t.Fatalf("cancel CREATED: %v", err)
	}
	if getTrip(t, f.store, created.ID).Status != domain.TripStatusCancelled {
		t.Error("trip must be CANCELLED")
	}

	inProgress := plannedTrip(t, f)
	if _, err := f.trips.Take(context.Background(), inProgress.ID, f.driver.ID, f.truck.ID); err != nil {
		t.Fatalf("take: %v", err)
	}
	if _, err := f.trips.Cancel(context.Background(), inProgress.ID); err != nil {
		t.Fatalf("cancel IN_PROGRESS: %v", err)
	}
	// Cancellation of a running trip frees the crew.
	if getDriver(t, f.store, f.driver.ID).Status != domain.DriverStatusAvailable {
		t.Error("driver must be released on cancellation")
	}

	delivered := plannedTrip(t, f)
	if _, err := f.trips.Take(context.Background(), delivered.ID, f.driver.ID, f.truck.ID); err != nil {
		t.Fatalf("take: %v", err)
	}
	if _, err := f.trips.UploadDeliveryDocuments(context.Background(), delivered.ID, []string{"pod-1"}); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if _, err := f.trips.Cancel(context.Background(), delivered.ID); !errors.Is(err, service.ErrInvalidTransition) {
		t.Fatalf("cancel DELIVERED: got %v, want ErrInvalidTransition", err)
	}
}
