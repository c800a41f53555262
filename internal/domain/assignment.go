package domain

import "time"

// RequestStatus represents the review state of a truck assignment request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// TruckAssignmentRequest represents a driver's request to be paired with a
// truck. The reviewer may assign a different truck than the preferred one;
// AssignedTruckID records the actual choice even when it equals the
// preference. Same one-shot mutation rule as DocumentSubmission.
type TruckAssignmentRequest struct {
	ID                  string
	DriverID            string
	DriverName          string
	PreferredTruckID    string
	PreferredTruckPlate string
	AssignedTruckID     string
	AssignedTruckPlate  string
	Status              RequestStatus
	RequestedAt         time.Time
	ReviewedAt          time.Time
	ReviewedBy          string
	RejectionNote       string
}
