package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"naklos/internal/domain"
	"naklos/internal/service"
)

func submitLicense(t *testing.T, svc *service.DocumentService, driverID string, expiry time.Time) *domain.DocumentSubmission {
	t.Helper()
	sub, err := svc.Submit(context.Background(), service.SubmitDocumentRequest{
		Category:        domain.DocumentLicense,
		SubjectID:       driverID,
		SubmittedBy:     driverID,
		ImageRef:        "img-1",
		SuggestedExpiry: expiry,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return sub
}

func TestDocumentSubmit_MissingFieldsNamed(t *testing.T) {
	t.Parallel()

	store := newStore()
	svc := service.NewDocumentService(store, nil, nil)

	_, err := svc.Submit(context.Background(), service.SubmitDocumentRequest{})

	var vErr *service.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	want := map[string]bool{"category": true, "subject_id": true, "image": true, "suggested_expiry_date": true}
	if len(vErr.Fields) != len(want) {
		t.Fatalf("fields = %v, want %d entries", vErr.Fields, len(want))
	}
	for _, f := range vErr.Fields {
		if !want[f] {
			t.Errorf("unexpected field %q", f)
		}
	}
}

func TestDocumentSubmit_SnapshotsPreviousExpiry(t *testing.T) {
	t.Parallel()

	store := newStore()
	oldExpiry := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	driver := seedDriver(t, store, &domain.Driver{Name: "Mehmet", LicenseExpiry: oldExpiry})

	svc := service.NewDocumentService(store, nil, nil)
	sub := submitLicense(t, svc, driver.ID, oldExpiry.AddDate(1, 0, 0))

	if !sub.PreviousExpiry.Equal(oldExpiry) {
		t.Errorf("previous expiry = %v, want %v", sub.PreviousExpiry, oldExpiry)
	}
	if sub.Status != domain.SubmissionStatusPending {
		t.Errorf("status = %s, want PENDING", sub.Status)
	}
	if sub.SubjectType != domain.SubjectDriver {
		t.Errorf("subject type = %s, want DRIVER", sub.SubjectType)
	}
}

func TestDocumentSubmit_SnapshotsPreviousImage(t *testing.T) {
	t.Parallel()

	store := newStore()
	driver := seedDriver(t, store, &domain.Driver{Name: "Mehmet"})
	svc := service.NewDocumentService(store, nil, nil)

	first := submitLicense(t, svc, driver.ID, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	if first.PreviousImageRef != "" {
		t.Errorf("first submission snapshotted image %q, want none", first.PreviousImageRef)
	}

	confirmed := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Approve(context.Background(), first.ID, confirmed, "manager-1"); err != nil {
		t.Fatalf("approve: %v", err)
	}

	// An approved SRC certificate must not leak into the license snapshot.
	src, err := svc.Submit(context.Background(), service.SubmitDocumentRequest{
		Category:        domain.DocumentSRC,
		SubjectID:       driver.ID,
		SubmittedBy:     driver.ID,
		ImageRef:        "img-src",
		SuggestedExpiry: time.Date(2028, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("submit src: %v", err)
	}
	if _, err := svc.Approve(context.Background(), src.ID, time.Date(2028, 1, 1, 0, 0, 0, 0, time.UTC), "manager-1"); err != nil {
		t.Fatalf("approve src: %v", err)
	}

	renewal, err := svc.Submit(context.Background(), service.SubmitDocumentRequest{
		Category:        domain.DocumentLicense,
		SubjectID:       driver.ID,
		SubmittedBy:     driver.ID,
		ImageRef:        "img-2",
		SuggestedExpiry: time.Date(2028, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("submit renewal: %v", err)
	}

	if renewal.PreviousImageRef != "img-1" {
		t.Errorf("previous image = %q, want %q", renewal.PreviousImageRef, "img-1")
	}
}

func TestDocumentApprove_PropagatesConfirmedExpiry(t *testing.T) {
	t.Parallel()

	store := newStore()
	driver := seedDriver(t, store, &domain.Driver{Name: "Mehmet"})
	svc := service.NewDocumentService(store, nil, nil)

	suggested := time.Date(2027, 1, 10, 0, 0, 0, 0, time.UTC)
	sub := submitLicense(t, svc, driver.ID, suggested)

	// The reviewer corrects the suggested date; the corrected one wins.
	confirmed := time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC)
	approved, err := svc.Approve(context.Background(), sub.ID, confirmed, "manager-1")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	if approved.Status != domain.SubmissionStatusApproved {
		t.Errorf("status = %s, want APPROVED", approved.Status)
	}
	if !approved.ConfirmedExpiry.Equal(confirmed) {
		t.Errorf("confirmed expiry = %v, want %v", approved.ConfirmedExpiry, confirmed)
	}

	got := getDriver(t, store, driver.ID)
	if !got.LicenseExpiry.Equal(confirmed) {
		t.Errorf("driver license expiry = %v, want %v", got.LicenseExpiry, confirmed)
	}
}

func TestDocumentApprove_RequiresConfirmedExpiry(t *testing.T) {
	t.Parallel()

	store := newStore()
	driver := seedDriver(t, store, &domain.Driver{Name: "Mehmet"})
	svc := service.NewDocumentService(store, nil, nil)
	sub := submitLicense(t, svc, driver.ID, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.Approve(context.Background(), sub.ID, time.Time{}, "manager-1")

	var vErr *service.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDocumentApprove_CertificateRenewal(t *testing.T) {
	t.Parallel()

	store := newStore()
	driver := seedDriver(t, store, &domain.Driver{
		Name: "Ali",
		Certificates: []domain.Certificate{
			{Type: domain.CertificateSRC, Number: "SRC-1", ExpiryDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		},
	})
	svc := service.NewDocumentService(store, nil, nil)

	sub, err := svc.Submit(context.Background(), service.SubmitDocumentRequest{
		Category:        domain.DocumentSRC,
		SubjectID:       driver.ID,
		SubmittedBy:     driver.ID,
		ImageRef:        "img-src",
		SuggestedExpiry: time.Date(2028, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	confirmed := time.Date(2028, 5, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Approve(context.Background(), sub.ID, confirmed, "manager-1"); err != nil {
		t.Fatalf("approve: %v", err)
	}

	got := getDriver(t, store, driver.ID)
	if len(got.Certificates) != 1 {
		t.Fatalf("certificates = %d, want 1 (renewed in place)", len(got.Certificates))
	}
	if !got.Certificates[0].ExpiryDate.Equal(confirmed) {
		t.Errorf("certificate expiry = %v, want %v", got.Certificates[0].ExpiryDate, confirmed)
	}
}

func TestDocumentApprove_TruckInsurancePropagation(t *testing.T) {
	t.Parallel()

	store := newStore()
	truck := seedTruck(t, store, &domain.Truck{PlateNumber: "34 TR 100", Type: "box"})
	svc := service.NewDocumentService(store, nil, nil)

	sub, err := svc.Submit(context.Background(), service.SubmitDocumentRequest{
		Category:        domain.DocumentCompulsoryInsurance,
		SubjectID:       truck.ID,
		SubmittedBy:     "driver-1",
		ImageRef:        "img-ins",
		SuggestedExpiry: time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.SubjectType != domain.SubjectTruck {
		t.Fatalf("subject type = %s, want TRUCK", sub.SubjectType)
	}

	confirmed := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Approve(context.Background(), sub.ID, confirmed, "manager-1"); err != nil {
		t.Fatalf("approve: %v", err)
	}

	got := getTruck(t, store, truck.ID)
	if !got.CompulsoryInsuranceExpiry.Equal(confirmed) {
		t.Errorf("truck insurance expiry = %v, want %v", got.CompulsoryInsuranceExpiry, confirmed)
	}
}

func TestDocumentReject_KeepsOldExpiry(t *testing.T) {
	t.Parallel()

	store := newStore()
	oldExpiry := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	driver := seedDriver(t, store, &domain.Driver{Name: "Mehmet", LicenseExpiry: oldExpiry})
	svc := service.NewDocumentService(store, nil, nil)
	sub := submitLicense(t, svc, driver.ID, oldExpiry.AddDate(1, 0, 0))

	rejected, err := svc.Reject(context.Background(), sub.ID, domain.RejectionBlurry, "", "manager-1")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != domain.SubmissionStatusRejected {
		t.Errorf("status = %s, want REJECTED", rejected.Status)
	}

	got := getDriver(t, store, driver.ID)
	if !got.LicenseExpiry.Equal(oldExpiry) {
		t.Errorf("license expiry changed on rejection: %v", got.LicenseExpiry)
	}
}

func TestDocumentReject_OtherRequiresNote(t *testing.T) {
	t.Parallel()

	store := newStore()
	driver := seedDriver(t, store, &domain.Driver{Name: "Mehmet"})
	svc := service.NewDocumentService(store, nil, nil)
	sub := submitLicense(t, svc, driver.ID, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.Reject(context.Background(), sub.ID, domain.RejectionOther, "", "manager-1")
	var vErr *service.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// With a note the rejection goes through.
	if _, err := svc.Reject(context.Background(), sub.ID, domain.RejectionOther, "photo cut off", "manager-1"); err != nil {
		t.Fatalf("reject with note: %v", err)
	}
}

func TestDocumentReject_UnknownReasonRejected(t *testing.T) {
	t.Parallel()

	store := newStore()
	driver := seedDriver(t, store, &domain.Driver{Name: "Mehmet"})
	svc := service.NewDocumentService(store, nil, nil)
	sub := submitLicense(t, svc, driver.ID, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.Reject(context.Background(), sub.ID, domain.RejectionReason("BAD_MOOD"), "note", "manager-1")
	var vErr *service.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for unknown reason, got %v", err)
	}
}

func TestDocumentReview_OneShot(t *testing.T) {
	t.Parallel()

	store := newStore()
	driver := seedDriver(t, store, &domain.Driver{Name: "Mehmet"})
	svc := service.NewDocumentService(store, nil, nil)
	sub := submitLicense(t, svc, driver.ID, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))

	confirmed := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Approve(context.Background(), sub.ID, confirmed, "manager-1"); err != nil {
		t.Fatalf("first approve: %v", err)
	}

	if _, err := svc.Approve(context.Background(), sub.ID, confirmed, "manager-2"); !errors.Is(err, service.ErrInvalidTransition) {
		t.Errorf("second approve: got %v, want ErrInvalidTransition", err)
	}
	if _, err := svc.Reject(context.Background(), sub.ID, domain.RejectionBlurry, "", "manager-2"); !errors.Is(err, service.ErrInvalidTransition) {
		t.Errorf("reject after approve: got %v, want ErrInvalidTransition", err)
	}
}
