package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"naklos/internal/domain"
	"naklos/internal/repository"
)

// Expiry fields start producing warnings this many days before the
// deadline; below errorThresholdDays the severity escalates to error.
const (
	warningThresholdDays = 30
	errorThresholdDays   = 7
)

// WarningService computes expiry warnings over the current fleet snapshot.
type WarningService struct {
	store repository.Store
	cache WarningCache
	now   func() time.Time
}

// WarningCache caches a computed warning list for a short TTL. Implemented
// by the Redis cache store; nil disables caching.
type WarningCache interface {
	GetWarnings(ctx context.Context) ([]domain.Warning, error)
	SetWarnings(ctx context.Context, warnings []domain.Warning) error
}

// NewWarningService creates a new WarningService.
func NewWarningService(store repository.Store, cache WarningCache) *WarningService {
	return &WarningService{store: store, cache: cache, now: time.Now}
}

// Compute loads the current trucks and drivers and returns their expiry
// warnings, errors first.
func (s *WarningService) Compute(ctx context.Context) ([]domain.Warning, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetWarnings(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	trucks, err := s.store.Trucks().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	drivers, err := s.store.Drivers().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	warnings := ComputeWarnings(s.now(), trucks, drivers)

	if s.cache != nil {
		_ = s.cache.SetWarnings(ctx, warnings)
	}

	return warnings, nil
}

// ComputeWarnings inspects every date-bearing compliance field and emits a
// warning for each one expiring within 30 days. Pure and deterministic: no
// side effects, no mutation of the inputs.
//
// A zero expiry date means the document is not on file and produces no
// warning; it is "not applicable", not overdue. Already-expired fields
// (negative days remaining) are likewise silent here; they surface through
// the review workflows, not the dashboard feed.
func ComputeWarnings(now time.Time, trucks []*domain.Truck, drivers []*domain.Driver) []domain.Warning {
	var warnings []domain.Warning

	add := func(w domain.Warning, expiry time.Time) {
		days, ok := daysRemaining(now, expiry)
		if !ok || days < 0 || days > warningThresholdDays {
			return
		}
		w.DaysRemaining = days
		w.Severity = domain.SeverityWarning
		if days < errorThresholdDays {
			w.Severity = domain.SeverityError
		}
		warnings = append(warnings, w)
	}

	for _, truck := range trucks {
		add(domain.Warning{
			Type:        domain.WarningInsuranceExpiring,
			Message:     expiryMessage(truck.PlateNumber, "compulsory traffic insurance", now, truck.CompulsoryInsuranceExpiry),
			SubjectType: domain.SubjectTruck,
			SubjectID:   truck.ID,
		}, truck.CompulsoryInsuranceExpiry)

		add(domain.Warning{
			Type:        domain.WarningInsuranceExpiring,
			Message:     expiryMessage(truck.PlateNumber, "comprehensive insurance", now, truck.ComprehensiveInsuranceExpiry),
			SubjectType: domain.SubjectTruck,
			SubjectID:   truck.ID,
		}, truck.ComprehensiveInsuranceExpiry)

		add(domain.Warning{
			Type:        domain.WarningInspectionExpiring,
			Message:     expiryMessage(truck.PlateNumber, "periodic inspection", now, truck.InspectionExpiry),
			SubjectType: domain.SubjectTruck,
			SubjectID:   truck.ID,
		}, truck.InspectionExpiry)
	}

	for _, driver := range drivers {
		add(domain.Warning{
			Type:        domain.WarningLicenseExpiring,
			Message:     expiryMessage(driver.Name, "driving license", now, driver.LicenseExpiry),
			SubjectType: domain.SubjectDriver,
			SubjectID:   driver.ID,
		}, driver.LicenseExpiry)

		for _, cert := range driver.Certificates {
			add(domain.Warning{
				Type:        domain.WarningCertificateExpiring,
				Message:     expiryMessage(driver.Name, string(cert.Type)+" certificate", now, cert.ExpiryDate),
				SubjectType: domain.SubjectDriver,
				SubjectID:   driver.ID,
			}, cert.ExpiryDate)
		}
	}

	// Errors before warnings; equal severities ordered by message so the
	// output is stable for identical inputs.
	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Severity != warnings[j].Severity {
			return warnings[i].Severity == domain.SeverityError
		}
		return warnings[i].Message < warnings[j].Message
	})

	return warnings
}

// daysRemaining returns the number of calendar days until expiry, rounding
// partial days up. The time-of-day of now is irrelevant because both sides
// are truncated to dates. ok is false for zero expiry dates.
func daysRemaining(now, expiry time.Time) (days int, ok bool) {
	if expiry.IsZero() {
		return 0, false
	}

	today := truncateToDate(now)
	due := truncateToDate(expiry)
	diff := due.Sub(today)

	days = int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}

	return days, true
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func expiryMessage(subject, document string, now, expiry time.Time) string {
	days, ok := daysRemaining(now, expiry)
	if !ok {
		return ""
	}

	switch {
	case days <= 0:
		return fmt.Sprintf("%s - %s expires today", subject, document)
	case days == 1:
		return fmt.Sprintf("%s - %s expires tomorrow", subject, document)
	default:
		return fmt.Sprintf("%s - %s expires in %d days", subject, document, days)
	}
}
