package domain

import "time"

// InvoiceStatus represents the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "PENDING"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
)

// Invoice groups approved trips of a single client into one bill. All
// referenced trips share exactly one client id; the batch builder enforces
// this at construction. Immutable once created except for payment-status
// transitions, which are applied by the (external) payments process.
type Invoice struct {
	ID         string
	ClientID   string
	ClientName string
	TripIDs    []string
	Amount     float64
	Status     InvoiceStatus
	IssueDate  time.Time
	DueDate    time.Time
	PaidDate   time.Time
}
