// Package events provides the canonical event schema for the SIEM core.
package events

import "time"

// Source type tags. One per registered collector kind.
const (
	SourceFirewall      = "firewall"
	SourceWindowsEvent  = "windows_event"
	SourceAuth          = "auth"
	SourceWeb           = "web"
	SourceDatabase      = "database"
	SourceCloud         = "cloud"
	SourceEDR           = "edr"
	SourceCollaboration = "collaboration"
)

// RawEvent is a source-specific log record as delivered by a collector.
// Keys and value shapes depend entirely on the source type.
type RawEvent map[string]interface{}

// String returns the value for key if it is a string, else "".
func (r RawEvent) String(key string) string {
	if r == nil {
		return ""
	}
	s, _ := r[key].(string)
	return s
}

// Int returns the value for key as an int when it is a numeric type.
// JSON round-trips turn ints into float64, so both are accepted.
func (r RawEvent) Int(key string) (int, bool) {
	if r == nil {
		return 0, false
	}
	switch v := r[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// NormalizedEvent is the unified schema (OCSF-inspired) produced by the
// normalizer. Immutable once stored.
type NormalizedEvent struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	SourceType string    `json:"source_type"`
	Severity   Severity  `json:"severity"`
	EventName  string    `json:"event_name"`
	User       string    `json:"user,omitempty"`
	SrcIP      string    `json:"src_ip,omitempty"`
	DstIP      string    `json:"dst_ip,omitempty"`
	// OriginalData retains the raw record for audit and debugging.
	OriginalData RawEvent `json:"original_data"`
}
