package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

// DocumentService runs the compliance-document approval workflow. A
// submission moves PENDING to APPROVED or PENDING to REJECTED exactly once;
// approval also writes the confirmed expiry back onto the subject entity in
// the same transaction.
type DocumentService struct {
	store    repository.Store
	notifier *NotificationService
	warnings WarningInvalidator
	now      func() time.Time
}

// WarningInvalidator drops the cached warning feed after an approval
// changes an expiry date. Implemented by the Redis cache store; nil means
// staleness is bounded by the cache TTL alone.
type WarningInvalidator interface {
	InvalidateWarnings(ctx context.Context) error
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(store repository.Store, notifier *NotificationService, warnings WarningInvalidator) *DocumentService {
	return &DocumentService{store: store, notifier: notifier, warnings: warnings, now: time.Now}
}

// SubmitDocumentRequest contains the parameters for submitting a document.
type SubmitDocumentRequest struct {
	Category        domain.DocumentCategory
	SubjectID       string
	SubmittedBy     string
	ImageRef        string
	SuggestedExpiry time.Time
}

// Submit creates a new pending submission for review. The previous
// document and expiry are snapshotted from the subject entity so the
// reviewer can compare side by side.
func (s *DocumentService) Submit(ctx context.Context, req SubmitDocumentRequest) (*domain.DocumentSubmission, error) {
	var missing []string
	if !req.Category.Valid() {
		missing = append(missing, "category")
	}
	if req.SubjectID == "" {
		missing = append(missing, "subject_id")
	}
	if req.ImageRef == "" {
		missing = append(missing, "image")
	}
	if req.SuggestedExpiry.IsZero() {
		missing = append(missing, "suggested_expiry_date")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	sub := &domain.DocumentSubmission{
		ID:              uuid.New().String(),
		Category:        req.Category,
		SubjectType:     req.Category.Subject(),
		SubjectID:       req.SubjectID,
		SubmittedBy:     req.SubmittedBy,
		ImageRef:        req.ImageRef,
		SuggestedExpiry: req.SuggestedExpiry,
		Status:          domain.SubmissionStatusPending,
		SubmittedAt:     s.now(),
	}

	// Snapshot the document being replaced.
	switch sub.SubjectType {
	case domain.SubjectDriver:
		driver, err := s.store.Drivers().GetByID(ctx, req.SubjectID)
		if err != nil {
			return nil, err
		}
		sub.SubjectName = driver.Name
		sub.PreviousExpiry = currentDriverExpiry(driver, req.Category)
	case domain.SubjectTruck:
		truck, err := s.store.Trucks().GetByID(ctx, req.SubjectID)
		if err != nil {
			return nil, err
		}
		sub.SubjectName = truck.PlateNumber
		sub.PreviousExpiry = currentTruckExpiry(truck, req.Category)
	}

	// The image half of the snapshot lives on the last approved
	// submission of the same document; a first-time submission has none.
	prev, err := s.lastApprovedImage(ctx, req.SubjectID, req.Category)
	if err != nil {
		return nil, err
	}
	sub.PreviousImageRef = prev

	if err := s.store.Submissions().Create(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// Approve moves a pending submission to APPROVED and propagates the
// confirmed expiry to the subject entity's compliance field. The reviewer
// may accept the submitter's suggested date or correct it; the confirmed
// date is never defaulted silently.
func (s *DocumentService) Approve(ctx context.Context, submissionID string, confirmedExpiry time.Time, reviewedBy string) (*domain.DocumentSubmission, error) {
	if confirmedExpiry.IsZero() {
		return nil, NewValidationError("confirmed_expiry_date")
	}

	var approved *domain.DocumentSubmission

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		sub, err := tx.Submissions().GetByID(ctx, submissionID)
		if err != nil {
			return err
		}

		if sub.Status != domain.SubmissionStatusPending {
			return ErrInvalidTransition
		}

		sub.Status = domain.SubmissionStatusApproved
		sub.ConfirmedExpiry = confirmedExpiry
		sub.ReviewedAt = s.now()
		sub.ReviewedBy = reviewedBy

		// The write-back is the point of the workflow: the entity's
		// compliance field must reflect the confirmed date in the same
		// atomic step.
		if err := s.propagateExpiry(ctx, tx, sub); err != nil {
			return err
		}

		if err := tx.Submissions().Update(ctx, sub); err != nil {
			return err
		}

		approved = sub
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.warnings != nil {
		_ = s.warnings.InvalidateWarnings(ctx)
	}
	if s.notifier != nil {
		_ = s.notifier.NotifyDocumentReviewed(ctx, approved)
	}

	return approved, nil
}

// Reject moves a pending submission to REJECTED. The subject entity keeps
// its old expiry. A note is required when the reason is OTHER so the
// submitter is never left guessing.
func (s *DocumentService) Reject(ctx context.Context, submissionID string, reason domain.RejectionReason, note, reviewedBy string) (*domain.DocumentSubmission, error) {
	if !reason.Valid() {
		return nil, NewValidationError("rejection_reason")
	}
	if reason == domain.RejectionOther && note == "" {
		return nil, NewValidationError("rejection_note")
	}

	var rejected *domain.DocumentSubmission

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		sub, err := tx.Submissions().GetByID(ctx, submissionID)
		if err != nil {
			return err
		}

		if sub.Status != domain.SubmissionStatusPending {
			return ErrInvalidTransition
		}

		sub.Status = domain.SubmissionStatusRejected
		sub.RejectionReason = reason
		sub.RejectionNote = note
		sub.ReviewedAt = s.now()
		sub.ReviewedBy = reviewedBy

		if err := tx.Submissions().Update(ctx, sub); err != nil {
			return err
		}

		rejected = sub
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyDocumentReviewed(ctx, rejected)
	}

	return rejected, nil
}

// Get retrieves a submission by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.DocumentSubmission, error) {
	return s.store.Submissions().GetByID(ctx, id)
}

// List retrieves submissions matching the filter.
func (s *DocumentService) List(ctx context.Context, filter repository.SubmissionListFilter) ([]*domain.DocumentSubmission, error) {
	return s.store.Submissions().List(ctx, filter)
}

// lastApprovedImage returns the image reference of the most recently
// approved submission for the subject and category, or "" when the
// document has never been approved.
func (s *DocumentService) lastApprovedImage(ctx context.Context, subjectID string, category domain.DocumentCategory) (string, error) {
	approved := domain.SubmissionStatusApproved
	prior, err := s.store.Submissions().List(ctx, repository.SubmissionListFilter{
		Status:    &approved,
		SubjectID: &subjectID,
	})
	if err != nil {
		return "", err
	}

	// List is ordered oldest first; the last matching entry wins.
	var image string
	for _, p := range prior {
		if p.Category == category {
			image = p.ImageRef
		}
	}
	return image, nil
}

// propagateExpiry writes the confirmed expiry onto the entity field the
// category renews.
func (s *DocumentService) propagateExpiry(ctx context.Context, tx repository.Store, sub *domain.DocumentSubmission) error {
	switch sub.Category {
	case domain.DocumentLicense, domain.DocumentSRC, domain.DocumentCPC:
		driver, err := tx.Drivers().GetByID(ctx, sub.SubjectID)
		if err != nil {
			return err
		}

		switch sub.Category {
		case domain.DocumentLicense:
			driver.LicenseExpiry = sub.ConfirmedExpiry
		case domain.DocumentSRC:
			setCertificateExpiry(driver, domain.CertificateSRC, sub.ConfirmedExpiry)
		case domain.DocumentCPC:
			setCertificateExpiry(driver, domain.CertificateCPC, sub.ConfirmedExpiry)
		}

		return tx.Drivers().Update(ctx, driver)

	case domain.DocumentCompulsoryInsurance, domain.DocumentComprehensiveInsurance, domain.DocumentInspection:
		truck, err := tx.Trucks().GetByID(ctx, sub.SubjectID)
		if err != nil {
			return err
		}

		switch sub.Category {
		case domain.DocumentCompulsoryInsurance:
			truck.CompulsoryInsuranceExpiry = sub.ConfirmedExpiry
		case domain.DocumentComprehensiveInsurance:
			truck.ComprehensiveInsuranceExpiry = sub.ConfirmedExpiry
		case domain.DocumentInspection:
			truck.InspectionExpiry = sub.ConfirmedExpiry
		}

		return tx.Trucks().Update(ctx, truck)
	}

	return nil
}

// setCertificateExpiry renews the driver's certificate of the given type,
// appending a new record when the driver has none yet.
func setCertificateExpiry(driver *domain.Driver, certType domain.CertificateType, expiry time.Time) {
	for i := range driver.Certificates {
		if driver.Certificates[i].Type == certType {
			driver.Certificates[i].ExpiryDate = expiry
			return
		}
	}

	driver.Certificates = append(driver.Certificates, domain.Certificate{
		Type:       certType,
		ExpiryDate: expiry,
	})
}

func currentDriverExpiry(driver *domain.Driver, category domain.DocumentCategory) time.Time {
	switch category {
	case domain.DocumentLicense:
		return driver.LicenseExpiry
	case domain.DocumentSRC, domain.DocumentCPC:
		want := domain.CertificateSRC
		if category == domain.DocumentCPC {
			want = domain.CertificateCPC
		}
		for _, cert := range driver.Certificates {
			if cert.Type == want {
				return cert.ExpiryDate
			}
		}
	}
	return time.Time{}
}

func currentTruckExpiry(truck *domain.Truck, category domain.DocumentCategory) time.Time {
	switch category {
	case domain.DocumentCompulsoryInsurance:
		return truck.CompulsoryInsuranceExpiry
	case domain.DocumentComprehensiveInsurance:
		return truck.ComprehensiveInsuranceExpiry
	case domain.DocumentInspection:
		return truck.InspectionExpiry
	}
	return time.Time{}
}
