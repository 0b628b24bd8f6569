package events

import "strings"

// Severity is a coarse ordinal risk bucket attached to events and alerts.
type Severity string

const (
	SeverityUnknown  Severity = "Unknown"
	SeveritySafe     Severity = "Safe"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

var severityRank = map[Severity]int{
	SeverityUnknown:  0,
	SeveritySafe:     1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// AtLeast reports whether s ranks at or above other. Unknown ranks lowest.
func (s Severity) AtLeast(other Severity) bool {
	return severityRank[s] >= severityRank[other]
}

// Max returns the higher-ranked of s and other.
func (s Severity) Max(other Severity) Severity {
	if severityRank[other] > severityRank[s] {
		return other
	}
	return s
}

// ParseSeverity maps a string to a Severity, case-insensitive.
// Unrecognized values map to Unknown.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(s) {
	case "safe", "low", "info", "informational":
		return SeveritySafe
	case "medium", "moderate":
		return SeverityMedium
	case "high":
		return SeverityHigh
	case "critical":
		return SeverityCritical
	default:
		return SeverityUnknown
	}
}
