package collector

import (
	"fmt"
	"math/rand"
	"time"

	"siem-core/pkg/events"
)

// AuthCollector simulates AD/SSO identity logs. Stands in for a directory
// service API a production deployment would poll.
type AuthCollector struct {
	interval time.Duration
	rng      *rand.Rand
	users    []string
	events   []string
}

func NewAuthCollector(interval time.Duration) *AuthCollector {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &AuthCollector{
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		users:    []string{"alice", "bob", "charlie", "admin", "service_account"},
		events:   []string{"Logon Success", "Logon Failed", "Account Locked", "Password Changed"},
	}
}

func (a *AuthCollector) Name() string            { return "Auth_Logs" }
func (a *AuthCollector) SourceType() string      { return events.SourceAuth }
func (a *AuthCollector) Interval() time.Duration { return a.interval }

func (a *AuthCollector) Collect() ([]events.RawEvent, error) {
	// 30% chance of an event per cycle.
	if a.rng.Float64() <= 0.7 {
		return nil, nil
	}
	log := events.RawEvent{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"user":      a.users[a.rng.Intn(len(a.users))],
		"event":     a.events[a.rng.Intn(len(a.events))],
		"source_ip": fmt.Sprintf("192.168.1.%d", 10+a.rng.Intn(191)),
		"service":   "Active Directory",
	}
	return []events.RawEvent{log}, nil
}
