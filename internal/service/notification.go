package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"naklos/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationAssignmentApproved NotificationType = "ASSIGNMENT_APPROVED"
	NotificationAssignmentRejected NotificationType = "ASSIGNMENT_REJECTED"
	NotificationDocumentApproved   NotificationType = "DOCUMENT_APPROVED"
	NotificationDocumentRejected   NotificationType = "DOCUMENT_REJECTED"
	NotificationTripApproved       NotificationType = "TRIP_APPROVED"
)

// Notification represents a notification to be delivered to a driver or
// manager.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	CreatedAt   time.Time
}

// NotificationService delivers workflow outcomes to the people affected.
// The transport is a stub; a real deployment would plug in push/SMS here.
type NotificationService struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyAssignmentReviewed tells the driver how their truck request ended.
func (s *NotificationService) NotifyAssignmentReviewed(ctx context.Context, req *domain.TruckAssignmentRequest) error {
	n := Notification{
		Type:        NotificationAssignmentApproved,
		RecipientID: req.DriverID,
		Title:       "Truck Request Approved",
		Message:     fmt.Sprintf("You have been assigned truck %s", req.AssignedTruckPlate),
		CreatedAt:   time.Now(),
	}

	if req.Status == domain.RequestStatusRejected {
		n.Type = NotificationAssignmentRejected
		n.Title = "Truck Request Rejected"
		n.Message = fmt.Sprintf("Your truck request was rejected: %s", req.RejectionNote)
	}

	return s.send(ctx, n)
}

// NotifyDocumentReviewed tells the submitter how their document review
// ended.
func (s *NotificationService) NotifyDocumentReviewed(ctx context.Context, sub *domain.DocumentSubmission) error {
	n := Notification{
		Type:        NotificationDocumentApproved,
		RecipientID: sub.SubmittedBy,
		Title:       "Document Approved",
		Message:     fmt.Sprintf("Your %s submission was approved", sub.Category),
		CreatedAt:   time.Now(),
	}

	if sub.Status == domain.SubmissionStatusRejected {
		n.Type = NotificationDocumentRejected
		n.Title = "Document Rejected"
		n.Message = fmt.Sprintf("Your %s submission was rejected (%s)", sub.Category, sub.RejectionReason)
	}

	return s.send(ctx, n)
}

// NotifyTripApproved tells the driver their trip passed manager approval.
func (s *NotificationService) NotifyTripApproved(ctx context.Context, trip *domain.Trip) error {
	if trip.DriverID == "" {
		return nil
	}

	return s.send(ctx, Notification{
		Type:        NotificationTripApproved,
		RecipientID: trip.DriverID,
		Title:       "Trip Approved",
		Message:     fmt.Sprintf("Trip %s to %s was approved", trip.ID, trip.DestinationCity),
		CreatedAt:   time.Now(),
	})
}

func (s *NotificationService) send(_ context.Context, n Notification) error {
	log.Printf("[NOTIFICATION] type=%s recipient=%s message=%q", n.Type, n.RecipientID, n.Message)
	return nil
}
