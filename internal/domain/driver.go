package domain

import "time"

// DriverStatus represents the current status of a driver.
type DriverStatus string

const (
	DriverStatusAvailable DriverStatus = "AVAILABLE"
	DriverStatusOnTrip    DriverStatus = "ON_TRIP"
	DriverStatusOffDuty   DriverStatus = "OFF_DUTY"
)

// CertificateType represents the type of a professional certificate.
type CertificateType string

const (
	CertificateSRC CertificateType = "SRC"
	CertificateCPC CertificateType = "CPC"
)

// Certificate represents a professional certificate held by a driver.
type Certificate struct {
	Type       CertificateType
	Number     string
	IssueDate  time.Time
	ExpiryDate time.Time
}

// Driver represents a driver in the fleet.
type Driver struct {
	ID                 string
	Name               string
	Phone              string
	LicenseNumber      string
	LicenseClass       string
	LicenseExpiry      time.Time
	Status             DriverStatus
	AssignedTruckID    string // empty when no truck is paired
	AssignedTruckPlate string
	Certificates       []Certificate
	CreatedAt          time.Time
}
