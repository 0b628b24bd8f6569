package collector

import (
	"fmt"
	"math/rand"
	"time"

	"siem-core/pkg/events"
)

// SecurityToolCollector simulates EDR/AV detections.
type SecurityToolCollector struct {
	interval time.Duration
	rng      *rand.Rand
	tools    []string
	threats  []string
}

func NewSecurityToolCollector(interval time.Duration) *SecurityToolCollector {
	if interval <= 0 {
		interval = 12 * time.Second
	}
	return &SecurityToolCollector{
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		tools:    []string{"CrowdStrike", "SentinelOne", "WindowsDefender"},
		threats:  []string{"Ransomware.LockBit", "Trojan.Emotet", "Mimikatz_Credential_Dump", "Suspicious PowerShell"},
	}
}

func (s *SecurityToolCollector) Name() string            { return "EDR_AV" }
func (s *SecurityToolCollector) SourceType() string      { return events.SourceEDR }
func (s *SecurityToolCollector) Interval() time.Duration { return s.interval }

func (s *SecurityToolCollector) Collect() ([]events.RawEvent, error) {
	// Detections are rare: 10% per cycle.
	if s.rng.Float64() <= 0.9 {
		return nil, nil
	}
	action := "Quarantined"
	if s.rng.Float64() <= 0.2 {
		action = "Alert Only"
	}
	log := events.RawEvent{
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"tool_name":    s.tools[s.rng.Intn(len(s.tools))],
		"threat_name":  s.threats[s.rng.Intn(len(s.threats))],
		"action_taken": action,
		"file_path":    `C:\Users\Admin\AppData\Local\Temp\malware.exe`,
		"device_name":  fmt.Sprintf("WORKSTATION-%d", 100+s.rng.Intn(900)),
	}
	return []events.RawEvent{log}, nil
}
