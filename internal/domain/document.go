package domain

import "time"

// DocumentCategory identifies which compliance document a submission renews.
type DocumentCategory string

const (
	DocumentLicense                DocumentCategory = "LICENSE"
	DocumentSRC                    DocumentCategory = "SRC"
	DocumentCPC                    DocumentCategory = "CPC"
	DocumentCompulsoryInsurance    DocumentCategory = "COMPULSORY_INSURANCE"
	DocumentComprehensiveInsurance DocumentCategory = "COMPREHENSIVE_INSURANCE"
	DocumentInspection             DocumentCategory = "INSPECTION"
)

// SubjectType identifies the entity a document or warning refers to.
type SubjectType string

const (
	SubjectDriver SubjectType = "DRIVER"
	SubjectTruck  SubjectType = "TRUCK"
)

// Valid reports whether the category is one of the closed set.
func (c DocumentCategory) Valid() bool {
	switch c {
	case DocumentLicense, DocumentSRC, DocumentCPC,
		DocumentCompulsoryInsurance, DocumentComprehensiveInsurance, DocumentInspection:
		return true
	}
	return false
}

// Subject returns the entity type the category applies to.
func (c DocumentCategory) Subject() SubjectType {
	switch c {
	case DocumentLicense, DocumentSRC, DocumentCPC:
		return SubjectDriver
	default:
		return SubjectTruck
	}
}

// SubmissionStatus represents the review state of a document submission.
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "PENDING"
	SubmissionStatusApproved SubmissionStatus = "APPROVED"
	SubmissionStatusRejected SubmissionStatus = "REJECTED"
)

// RejectionReason is the closed set of reasons a reviewer may cite.
type RejectionReason string

const (
	RejectionBlurry     RejectionReason = "BLURRY"
	RejectionWrongType  RejectionReason = "WRONG_TYPE"
	RejectionExpired    RejectionReason = "EXPIRED"
	RejectionMismatch   RejectionReason = "MISMATCH"
	RejectionIncomplete RejectionReason = "INCOMPLETE"
	RejectionOther      RejectionReason = "OTHER"
)

// Valid reports whether the reason is one of the closed set.
func (r RejectionReason) Valid() bool {
	switch r {
	case RejectionBlurry, RejectionWrongType, RejectionExpired,
		RejectionMismatch, RejectionIncomplete, RejectionOther:
		return true
	}
	return false
}

// DocumentSubmission represents one compliance-document renewal awaiting
// review. A submission is mutated exactly once: PENDING to APPROVED or
// PENDING to REJECTED, and is immutable thereafter.
//
// ConfirmedExpiry is set only on approval; RejectionReason and
// RejectionNote only on rejection.
type DocumentSubmission struct {
	ID              string
	Category        DocumentCategory
	SubjectType     SubjectType
	SubjectID       string
	SubjectName     string
	SubmittedBy     string
	ImageRef        string // opaque handle supplied by the upload collaborator
	SuggestedExpiry time.Time
	ConfirmedExpiry time.Time
	Status          SubmissionStatus
	SubmittedAt     time.Time
	ReviewedAt      time.Time
	ReviewedBy      string
	RejectionReason RejectionReason
	RejectionNote   string

	// Snapshot of the document being replaced, for side-by-side review.
	PreviousImageRef string
	PreviousExpiry   time.Time
}
