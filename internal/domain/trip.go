package domain

import "time"

// TripStatus represents the lifecycle state of a trip.
type TripStatus string

const (
	TripStatusCreated    TripStatus = "CREATED"
	TripStatusInProgress TripStatus = "IN_PROGRESS"
	TripStatusDelivered  TripStatus = "DELIVERED"
	TripStatusApproved   TripStatus = "APPROVED"
	TripStatusInvoiced   TripStatus = "INVOICED"
	TripStatusCancelled  TripStatus = "CANCELLED"
)

// MaxDeliveryDocuments caps the proof-of-delivery attachments per trip.
const MaxDeliveryDocuments = 3

// TripExpenses is the expense breakdown recorded against a trip.
type TripExpenses struct {
	Fuel        float64
	Tolls       float64
	Other       float64
	OtherReason string
}

// Total returns the sum of all expense components.
func (e TripExpenses) Total() float64 {
	return e.Fuel + e.Tolls + e.Other
}

// Trip represents one freight trip.
//
// Two creation flows exist: planned trips (manager fills all fields up
// front, IsPlanned true) and proof-of-delivery-first trips (a driver
// submits delivery documents and a free-text destination before client,
// truck or revenue are known; such trips start at DELIVERED).
//
// DocumentsConfirmed and ApprovedByManager are independent gates; both must
// be true before the trip is eligible for invoicing. Invoiced implies
// ApprovedByManager and at least one delivery document.
type Trip struct {
	ID                       string
	ClientID                 string
	ClientName               string
	TruckID                  string
	TruckPlate               string
	DriverID                 string
	DriverName               string
	OriginCity               string
	DestinationCity          string
	CargoDescription         string
	Revenue                  float64 // zero until set at creation or approval
	Expenses                 TripExpenses
	Status                   TripStatus
	IsPlanned                bool
	DriverEnteredDestination string   // POD-first flow only
	DeliveryDocuments        []string // opaque references, max 3
	DocumentsConfirmed       bool
	ApprovedByManager        bool
	Invoiced                 bool
	CreatedAt                time.Time
	DeliveredAt              time.Time
	ApprovedAt               time.Time
	CancelledAt              time.Time
}
