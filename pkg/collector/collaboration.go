package collector

import (
	"fmt"
	"math/rand"
	"time"

	"siem-core/pkg/events"
)

// CollaborationCollector simulates email/collaboration platform logs
// (Office365, Slack, Zoom).
type CollaborationCollector struct {
	interval  time.Duration
	rng       *rand.Rand
	platforms []string
	events    []string
}

func NewCollaborationCollector(interval time.Duration) *CollaborationCollector {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &CollaborationCollector{
		interval:  interval,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		platforms: []string{"Office365", "Slack", "Zoom"},
		events:    []string{"Phishing Email Detected", "External File Share", "Suspicious Login", "Mass Export"},
	}
}

func (c *CollaborationCollector) Name() string            { return "Email_Collab" }
func (c *CollaborationCollector) SourceType() string      { return events.SourceCollaboration }
func (c *CollaborationCollector) Interval() time.Duration { return c.interval }

func (c *CollaborationCollector) Collect() ([]events.RawEvent, error) {
	// 20% chance per cycle.
	if c.rng.Float64() <= 0.8 {
		return nil, nil
	}
	event := c.events[c.rng.Intn(len(c.events))]
	details := "Quarantined"
	if event == "External File Share" {
		details = "Sent to external domain"
	}
	log := events.RawEvent{
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"platform":   c.platforms[c.rng.Intn(len(c.platforms))],
		"event_type": event,
		"user":       fmt.Sprintf("employee%d@company.com", 1+c.rng.Intn(100)),
		"details":    details,
	}
	return []events.RawEvent{log}, nil
}
