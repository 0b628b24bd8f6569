package events

import "time"

// Alert is a correlation engine output. Alerts are handed to callers and
// never persisted by the core; the engine keeps no alert history.
type Alert struct {
	Name      string    `json:"name"`
	Severity  Severity  `json:"severity"`
	SourceIP  string    `json:"source_ip"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"` // generation time, not event time
}
