package domain

import "time"

// Client represents a freight client invoiced for completed trips.
type Client struct {
	ID            string
	CompanyName   string
	TaxID         string
	ContactPerson string
	Phone         string
	Email         string
	City          string
	CreatedAt     time.Time
}
