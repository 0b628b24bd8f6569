package correlate

import (
	"testing"

	"siem-core/pkg/events"
)

func authFailure(ip string) events.NormalizedEvent {
	return events.NormalizedEvent{
		SourceType: events.SourceAuth,
		EventName:  "Logon Failed",
		SrcIP:      ip,
		OriginalData: events.RawEvent{
			"event":     "Logon Failed",
			"source_ip": ip,
		},
	}
}

func firewallDeny(ip string) events.NormalizedEvent {
	return events.NormalizedEvent{
		SourceType: events.SourceFirewall,
		EventName:  "DENY",
		SrcIP:      ip,
		OriginalData: events.RawEvent{
			"action": "DENY",
			"src_ip": ip,
		},
	}
}

func edrThreat(ip string) events.NormalizedEvent {
	return events.NormalizedEvent{
		SourceType: events.SourceEDR,
		EventName:  "Trojan.Emotet",
		SrcIP:      ip,
		OriginalData: events.RawEvent{
			"threat_name": "Trojan.Emotet",
		},
	}
}

func TestCorrelate_BruteForceAndFirewallDrop(t *testing.T) {
	eng := NewEngine()
	batch := []events.NormalizedEvent{
		authFailure("1.2.3.4"),
		authFailure("1.2.3.4"),
		authFailure("1.2.3.4"),
		firewallDeny("1.2.3.4"),
	}
	alerts := eng.Correlate(batch)
	if len(alerts) != 1 {
		t.Fatalf("alerts = %d, want 1", len(alerts))
	}
	a := alerts[0]
	if a.Name != "Brute Force & Firewall Drop" {
		t.Errorf("name = %q", a.Name)
	}
	if a.SourceIP != "1.2.3.4" {
		t.Errorf("source_ip = %q", a.SourceIP)
	}
	if a.Severity != events.SeverityHigh {
		t.Errorf("severity = %q, want High", a.Severity)
	}
	if a.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
	if a.Details == "" {
		t.Error("details empty")
	}
}

func TestCorrelate_ThresholdBoundary(t *testing.T) {
	eng := NewEngine()
	// Only 2 failed logons: below the 3 required.
	batch := []events.NormalizedEvent{
		authFailure("1.2.3.4"),
		authFailure("1.2.3.4"),
		firewallDeny("1.2.3.4"),
	}
	if alerts := eng.Correlate(batch); len(alerts) != 0 {
		t.Fatalf("alerts = %d, want 0", len(alerts))
	}
}

func TestCorrelate_SeparateIPsDoNotCombine(t *testing.T) {
	eng := NewEngine()
	batch := []events.NormalizedEvent{
		authFailure("1.1.1.1"),
		authFailure("1.1.1.1"),
		authFailure("2.2.2.2"),
		firewallDeny("1.1.1.1"),
	}
	if alerts := eng.Correlate(batch); len(alerts) != 0 {
		t.Fatalf("alerts = %d, want 0 (counts must not merge across IPs)", len(alerts))
	}
}

func TestCorrelate_ExfiltrationRule(t *testing.T) {
	eng := NewEngine()
	batch := []events.NormalizedEvent{
		edrThreat("6.6.6.6"),
		firewallDeny("6.6.6.6"),
	}
	alerts := eng.Correlate(batch)
	if len(alerts) != 1 {
		t.Fatalf("alerts = %d, want 1", len(alerts))
	}
	if alerts[0].Name != "Compromised Host Exfiltration" {
		t.Errorf("name = %q", alerts[0].Name)
	}
	if alerts[0].Severity != events.SeverityCritical {
		t.Errorf("severity = %q, want Critical", alerts[0].Severity)
	}
}

func TestCorrelate_GroupCanTriggerMultipleRules(t *testing.T) {
	eng := NewEngine()
	batch := []events.NormalizedEvent{
		authFailure("7.7.7.7"),
		authFailure("7.7.7.7"),
		authFailure("7.7.7.7"),
		edrThreat("7.7.7.7"),
		firewallDeny("7.7.7.7"),
	}
	alerts := eng.Correlate(batch)
	if len(alerts) != 2 {
		t.Fatalf("alerts = %d, want 2", len(alerts))
	}
	names := map[string]bool{}
	for _, a := range alerts {
		names[a.Name] = true
	}
	if !names["Brute Force & Firewall Drop"] || !names["Compromised Host Exfiltration"] {
		t.Errorf("alert names = %v", names)
	}
}

func TestCorrelate_KeyPriority(t *testing.T) {
	eng := NewEngine()
	eng.SetRules([]Rule{{
		Name:     "Any Deny",
		Severity: events.SeverityMedium,
		Require:  map[Category]int{CategoryFirewallDeny: 1},
		Details:  "{ip}",
	}})

	// src_ip wins over raw source_ip and remote_addr.
	ev := events.NormalizedEvent{
		SrcIP: "10.0.0.1",
		OriginalData: events.RawEvent{
			"action":      "DENY",
			"source_ip":   "10.0.0.2",
			"remote_addr": "10.0.0.3",
		},
	}
	alerts := eng.Correlate([]events.NormalizedEvent{ev})
	if len(alerts) != 1 || alerts[0].SourceIP != "10.0.0.1" {
		t.Fatalf("alerts = %+v, want one for 10.0.0.1", alerts)
	}

	// Without src_ip, raw source_ip wins over remote_addr.
	ev.SrcIP = ""
	alerts = eng.Correlate([]events.NormalizedEvent{ev})
	if len(alerts) != 1 || alerts[0].SourceIP != "10.0.0.2" {
		t.Fatalf("alerts = %+v, want one for 10.0.0.2", alerts)
	}

	// remote_addr is the last resort.
	delete(ev.OriginalData, "source_ip")
	alerts = eng.Correlate([]events.NormalizedEvent{ev})
	if len(alerts) != 1 || alerts[0].SourceIP != "10.0.0.3" {
		t.Fatalf("alerts = %+v, want one for 10.0.0.3", alerts)
	}
}

func TestCorrelate_KeylessEventsExcluded(t *testing.T) {
	eng := NewEngine()
	batch := []events.NormalizedEvent{
		{SourceType: events.SourceEDR, OriginalData: events.RawEvent{"threat_name": "x"}},
		{SourceType: events.SourceFirewall, OriginalData: events.RawEvent{"action": "DENY"}},
	}
	if alerts := eng.Correlate(batch); len(alerts) != 0 {
		t.Fatalf("alerts = %d, want 0 (no correlation key)", len(alerts))
	}
}

func TestCorrelate_Web401CountsAsFailedLogon(t *testing.T) {
	eng := NewEngine()
	var batch []events.NormalizedEvent
	for i := 0; i < 3; i++ {
		batch = append(batch, events.NormalizedEvent{
			SourceType:   events.SourceWeb,
			EventName:    "POST",
			SrcIP:        "8.8.8.8",
			OriginalData: events.RawEvent{"status": 401, "remote_addr": "8.8.8.8"},
		})
	}
	batch = append(batch, firewallDeny("8.8.8.8"))
	alerts := eng.Correlate(batch)
	if len(alerts) != 1 || alerts[0].Name != "Brute Force & Firewall Drop" {
		t.Fatalf("alerts = %+v", alerts)
	}
}

func TestCorrelate_NoStateAcrossCalls(t *testing.T) {
	eng := NewEngine()
	half := []events.NormalizedEvent{
		authFailure("4.4.4.4"),
		authFailure("4.4.4.4"),
	}
	rest := []events.NormalizedEvent{
		authFailure("4.4.4.4"),
		firewallDeny("4.4.4.4"),
	}
	if alerts := eng.Correlate(half); len(alerts) != 0 {
		t.Fatalf("first call: alerts = %d, want 0", len(alerts))
	}
	// The engine must not remember the first batch.
	if alerts := eng.Correlate(rest); len(alerts) != 0 {
		t.Fatalf("second call: alerts = %d, want 0", len(alerts))
	}
}

func TestExpandDetails(t *testing.T) {
	got := expandDetails("IP {ip} had {failed_logon} failed logins and was blocked by firewall.",
		"1.2.3.4", map[Category]int{CategoryFailedLogon: 3, CategoryFirewallDeny: 1})
	want := "IP 1.2.3.4 had 3 failed logins and was blocked by firewall."
	if got != want {
		t.Errorf("details = %q, want %q", got, want)
	}
}
