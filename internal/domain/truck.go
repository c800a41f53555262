package domain

import "time"

// TruckStatus represents the operational status of a truck.
type TruckStatus string

const (
	TruckStatusAvailable   TruckStatus = "AVAILABLE"
	TruckStatusInTransit   TruckStatus = "IN_TRANSIT"
	TruckStatusMaintenance TruckStatus = "MAINTENANCE"
)

// Truck represents a truck in the fleet.
//
// The three expiry dates are independent compliance fields; a zero value
// means the document is not on file, which is treated as "not applicable"
// rather than overdue.
type Truck struct {
	ID          string
	PlateNumber string
	Type        string

	// Status tracks trip execution only. Pairing with a driver is carried
	// by AssignedDriverID; an assigned truck stays AVAILABLE until it is
	// dispatched on a trip.
	Status TruckStatus

	AssignedDriverID             string // empty when unassigned
	AssignedDriverName           string
	CompulsoryInsuranceExpiry    time.Time
	ComprehensiveInsuranceExpiry time.Time
	InspectionExpiry             time.Time
	CreatedAt                    time.Time
}

// Assigned reports whether the truck is paired with a driver.
func (t *Truck) Assigned() bool {
	return t.AssignedDriverID != ""
}
