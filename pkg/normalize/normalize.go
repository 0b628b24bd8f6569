// Package normalize maps raw source-specific events into the canonical
// schema. Per-source extraction is a data table, so adding a source type is
// a table entry, not new code.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"siem-core/pkg/events"
)

// mapping describes how one source type fills the canonical fields. Empty
// key = field not applicable for that source; it stays unset.
type mapping struct {
	eventNameKey string
	userKey      string
	srcIPKey     string
	dstIPKey     string
	severity     func(raw events.RawEvent) events.Severity
}

var mappings = map[string]mapping{
	events.SourceFirewall: {
		eventNameKey: "action",
		srcIPKey:     "src_ip",
		dstIPKey:     "dst_ip",
		severity: func(raw events.RawEvent) events.Severity {
			if raw.String("action") == "DENY" {
				return events.SeverityMedium
			}
			return events.SeveritySafe
		},
	},
	events.SourceWindowsEvent: {
		eventNameKey: "EventID",
		severity: func(raw events.RawEvent) events.Severity {
			id, ok := raw.Int("EventID")
			if !ok {
				return events.SeverityUnknown
			}
			switch id {
			case 4625: // failed logon
				return events.SeverityMedium
			case 4672, 4720: // privileged logon, account created
				return events.SeverityHigh
			case 1102: // audit log cleared
				return events.SeverityHigh
			default:
				return events.SeveritySafe
			}
		},
	},
	events.SourceAuth: {
		eventNameKey: "event",
		userKey:      "user",
		srcIPKey:     "source_ip",
		severity: func(raw events.RawEvent) events.Severity {
			switch raw.String("event") {
			case "Account Locked":
				return events.SeverityMedium
			default:
				return events.SeveritySafe
			}
		},
	},
	events.SourceWeb: {
		eventNameKey: "method",
		srcIPKey:     "remote_addr",
		severity: func(raw events.RawEvent) events.Severity {
			if status, ok := raw.Int("status"); ok && status >= 500 {
				return events.SeverityMedium
			}
			return events.SeveritySafe
		},
	},
	events.SourceDatabase: {
		eventNameKey: "query",
		userKey:      "db_user",
		srcIPKey:     "client_ip",
		severity: func(raw events.RawEvent) events.Severity {
			q := strings.ToUpper(raw.String("query"))
			if strings.HasPrefix(q, "DROP ") || strings.Contains(q, "PASSWORD") {
				return events.SeverityHigh
			}
			return events.SeveritySafe
		},
	},
	events.SourceCloud: {
		eventNameKey: "event_name",
		userKey:      "user_identity",
		srcIPKey:     "source_ip",
		severity: func(raw events.RawEvent) events.Severity {
			if raw.String("event_name") == "ConsoleLogin" && raw.String("user_identity") == "root_account" {
				return events.SeverityMedium
			}
			return events.SeveritySafe
		},
	},
	events.SourceEDR: {
		eventNameKey: "threat_name",
		severity: func(raw events.RawEvent) events.Severity {
			if strings.HasPrefix(raw.String("threat_name"), "Ransomware.") {
				return events.SeverityCritical
			}
			return events.SeverityHigh
		},
	},
	events.SourceCollaboration: {
		eventNameKey: "event_type",
		userKey:      "user",
		severity: func(raw events.RawEvent) events.Severity {
			switch raw.String("event_type") {
			case "Phishing Email Detected":
				return events.SeverityHigh
			case "Mass Export":
				return events.SeverityMedium
			default:
				return events.SeveritySafe
			}
		},
	},
}

// Normalize converts a raw event into the canonical schema. It never fails:
// an unrecognized source type or missing fields produce defaults. The
// timestamp of record is normalization time, not source emission time; raw
// sources are not trusted to carry a reliable clock.
func Normalize(raw events.RawEvent, sourceType string) events.NormalizedEvent {
	norm := events.NormalizedEvent{
		ID:           uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		SourceType:   sourceType,
		Severity:     events.SeverityUnknown,
		EventName:    "Unknown",
		OriginalData: raw,
	}
	m, ok := mappings[sourceType]
	if !ok {
		return norm
	}
	if m.eventNameKey != "" {
		if v, present := raw[m.eventNameKey]; present && v != nil {
			norm.EventName = fmt.Sprintf("%v", v)
		}
	}
	if m.userKey != "" {
		norm.User = raw.String(m.userKey)
	}
	if m.srcIPKey != "" {
		norm.SrcIP = raw.String(m.srcIPKey)
	}
	if m.dstIPKey != "" {
		norm.DstIP = raw.String(m.dstIPKey)
	}
	if m.severity != nil {
		norm.Severity = m.severity(raw)
	}
	return norm
}

// Recognized reports whether the source type has a mapping entry.
func Recognized(sourceType string) bool {
	_, ok := mappings[sourceType]
	return ok
}
