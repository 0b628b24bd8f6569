package collector

import (
	"fmt"
	"math/rand"
	"time"

	"siem-core/pkg/events"
)

// WindowsEventCollector simulates the Windows Security event log. A
// production deployment would read the OS event log API here; this source
// generates the same record shape portably.
type WindowsEventCollector struct {
	logType  string
	interval time.Duration
	rng      *rand.Rand
}

// Security event IDs worth watching: logon success/failure, privileged
// logon, account creation, log cleared.
var windowsEventIDs = []struct {
	id       int
	source   string
	category string
}{
	{4624, "Microsoft-Windows-Security-Auditing", "Logon"},
	{4625, "Microsoft-Windows-Security-Auditing", "Logon"},
	{4672, "Microsoft-Windows-Security-Auditing", "Special Logon"},
	{4720, "Microsoft-Windows-Security-Auditing", "User Account Management"},
	{1102, "Microsoft-Windows-Eventlog", "Log clear"},
}

func NewWindowsEventCollector(logType string, interval time.Duration) *WindowsEventCollector {
	if logType == "" {
		logType = "Security"
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &WindowsEventCollector{
		logType:  logType,
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (w *WindowsEventCollector) Name() string            { return "Windows_" + w.logType }
func (w *WindowsEventCollector) SourceType() string      { return events.SourceWindowsEvent }
func (w *WindowsEventCollector) Interval() time.Duration { return w.interval }

func (w *WindowsEventCollector) Collect() ([]events.RawEvent, error) {
	// Half the cycles produce nothing, like a quiet workstation.
	if w.rng.Float64() < 0.5 {
		return nil, nil
	}
	rec := windowsEventIDs[w.rng.Intn(len(windowsEventIDs))]
	log := events.RawEvent{
		"EventID":       rec.id,
		"TimeGenerated": time.Now().UTC().Format(time.RFC3339),
		"SourceName":    rec.source,
		"EventCategory": rec.category,
		"LogType":       w.logType,
		"Computer":      fmt.Sprintf("WORKSTATION-%d", 100+w.rng.Intn(900)),
	}
	return []events.RawEvent{log}, nil
}
