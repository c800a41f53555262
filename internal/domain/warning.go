package domain

// WarningType identifies which compliance field is about to expire.
type WarningType string

const (
	WarningInsuranceExpiring   WarningType = "INSURANCE_EXPIRING"
	WarningInspectionExpiring  WarningType = "INSPECTION_EXPIRING"
	WarningLicenseExpiring     WarningType = "LICENSE_EXPIRING"
	WarningCertificateExpiring WarningType = "CERTIFICATE_EXPIRING"
)

// WarningSeverity represents how urgent a compliance warning is.
type WarningSeverity string

const (
	SeverityWarning WarningSeverity = "WARNING"
	SeverityError   WarningSeverity = "ERROR"
)

// Warning is a derived compliance alert. Warnings are recomputed on every
// query and never persisted.
type Warning struct {
	Type          WarningType
	Message       string
	Severity      WarningSeverity
	SubjectType   SubjectType
	SubjectID     string
	DaysRemaining int
}
