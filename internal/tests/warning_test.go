package tests

import (
	"strings"
	"testing"
	"time"

	"naklos/internal/domain"
	"naklos/internal/service"
)

var warningNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func truckExpiring(id string, days int) *domain.Truck {
	return &domain.Truck{
		ID:                        id,
		PlateNumber:               "34 ABC " + id,
		CompulsoryInsuranceExpiry: daysFromNow(warningNow, days),
	}
}

func TestComputeWarnings_WindowBoundaries(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		days     int
		want     bool
		severity domain.WarningSeverity
	}{
		{name: "expires today", days: 0, want: true, severity: domain.SeverityError},
		{name: "expires tomorrow", days: 1, want: true, severity: domain.SeverityError},
		{name: "six days out", days: 6, want: true, severity: domain.SeverityError},
		{name: "exactly seven days", days: 7, want: true, severity: domain.SeverityWarning},
		{name: "exactly thirty days", days: 30, want: true, severity: domain.SeverityWarning},
		{name: "thirty one days", days: 31, want: false},
		{name: "already expired", days: -1, want: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			warnings := service.ComputeWarnings(warningNow,
				[]*domain.Truck{truckExpiring("t1", tc.days)}, nil)

			if !tc.want {
				if len(warnings) != 0 {
					t.Fatalf("expected no warnings, got %d", len(warnings))
				}
				return
			}

			if len(warnings) != 1 {
				t.Fatalf("expected 1 warning, got %d", len(warnings))
			}
			if warnings[0].Severity != tc.severity {
				t.Errorf("severity = %s, want %s", warnings[0].Severity, tc.severity)
			}
			if warnings[0].DaysRemaining != tc.days {
				t.Errorf("days remaining = %d, want %d", warnings[0].DaysRemaining, tc.days)
			}
		})
	}
}

func TestComputeWarnings_ZeroExpiryIsSilent(t *testing.T) {
	t.Parallel()

	trucks := []*domain.Truck{{ID: "t1", PlateNumber: "34 A 1"}}
	drivers := []*domain.Driver{{ID: "d1", Name: "Driver"}}

	warnings := service.ComputeWarnings(warningNow, trucks, drivers)
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings for entities with no dates on file, got %d", len(warnings))
	}
}

func TestComputeWarnings_AllFieldsInspected(t *testing.T) {
	t.Parallel()

	trucks := []*domain.Truck{{
		ID:                           "t1",
		PlateNumber:                  "34 A 1",
		CompulsoryInsuranceExpiry:    daysFromNow(warningNow, 5),
		ComprehensiveInsuranceExpiry: daysFromNow(warningNow, 10),
		InspectionExpiry:             daysFromNow(warningNow, 15),
	}}
	drivers := []*domain.Driver{{
		ID:            "d1",
		Name:          "Ayse",
		LicenseExpiry: daysFromNow(warningNow, 20),
		Certificates: []domain.Certificate{
			{Type: domain.CertificateSRC, ExpiryDate: daysFromNow(warningNow, 25)},
			{Type: domain.CertificateCPC, ExpiryDate: daysFromNow(warningNow, 40)},
		},
	}}

	warnings := service.ComputeWarnings(warningNow, trucks, drivers)

	// Five fields are inside the window; the CPC certificate at 40 days is
	// outside.
	if len(warnings) != 5 {
		t.Fatalf("expected 5 warnings, got %d", len(warnings))
	}

	types := make(map[domain.WarningType]int)
	for _, w := range warnings {
		types[w.Type]++
	}
	if types[domain.WarningInsuranceExpiring] != 2 {
		t.Errorf("insurance warnings = %d, want 2", types[domain.WarningInsuranceExpiring])
	}
	if types[domain.WarningInspectionExpiring] != 1 {
		t.Errorf("inspection warnings = %d, want 1", types[domain.WarningInspectionExpiring])
	}
	if types[domain.WarningLicenseExpiring] != 1 {
		t.Errorf("license warnings = %d, want 1", types[domain.WarningLicenseExpiring])
	}
	if types[domain.WarningCertificateExpiring] != 1 {
		t.Errorf("certificate warnings = %d, want 1", types[domain.WarningCertificateExpiring])
	}
}

func TestComputeWarnings_ErrorsSortFirst(t *testing.T) {
	t.Parallel()

	trucks := []*domain.Truck{
		truckExpiring("far", 20),
		truckExpiring("near", 2),
		truckExpiring("mid", 10),
	}

	warnings := service.ComputeWarnings(warningNow, trucks, nil)
	if len(warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %d", len(warnings))
	}

	if warnings[0].Severity != domain.SeverityError {
		t.Errorf("first warning severity = %s, want ERROR", warnings[0].Severity)
	}
	for i := 1; i < len(warnings); i++ {
		if warnings[i].Severity == domain.SeverityError && warnings[i-1].Severity != domain.SeverityError {
			t.Error("errors must sort before warnings")
		}
	}
}

func TestComputeWarnings_StableOrderForIdenticalInput(t *testing.T) {
	t.Parallel()

	trucks := []*domain.Truck{
		truckExpiring("a", 12),
		truckExpiring("b", 3),
		truckExpiring("c", 25),
	}

	first := service.ComputeWarnings(warningNow, trucks, nil)
	second := service.ComputeWarnings(warningNow, trucks, nil)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("warning %d differs between runs", i)
		}
	}
}

func TestComputeWarnings_MessageWording(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		days int
		want string
	}{
		{days: 0, want: "expires today"},
		{days: 1, want: "expires tomorrow"},
		{days: 14, want: "expires in 14 days"},
	}

	for _, tc := range testCases {
		warnings := service.ComputeWarnings(warningNow,
			[]*domain.Truck{truckExpiring("t1", tc.days)}, nil)
		if len(warnings) != 1 {
			t.Fatalf("days=%d: expected 1 warning, got %d", tc.days, len(warnings))
		}
		if !strings.Contains(warnings[0].Message, tc.want) {
			t.Errorf("days=%d: message %q does not contain %q", tc.days, warnings[0].Message, tc.want)
		}
	}
}

func TestComputeWarnings_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	truck := truckExpiring("t1", 5)
	before := *truck

	service.ComputeWarnings(warningNow, []*domain.Truck{truck}, nil)

	if *truck != before {
		t.Error("input truck was mutated")
	}
}
