package correlate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"siem-core/pkg/events"
)

// DefaultRules returns the built-in rule set.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "Brute Force & Firewall Drop",
			Severity: events.SeverityHigh,
			Require: map[Category]int{
				CategoryFailedLogon:  3,
				CategoryFirewallDeny: 1,
			},
			Details: "IP {ip} had {failed_logon} failed logins and was blocked by firewall.",
		},
		{
			Name:     "Compromised Host Exfiltration",
			Severity: events.SeverityCritical,
			Require: map[Category]int{
				CategoryThreatDetected: 1,
				CategoryFirewallDeny:   1,
			},
			Details: "IP {ip} triggered {threat_detected} threat detections alongside blocked traffic.",
		},
	}
}

// LoadRules reads a YAML rule file. The file replaces the built-in set, so
// operators can tune thresholds without a rebuild.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("rules yaml: %w", err)
	}
	for i, r := range rules {
		if r.Name == "" {
			return nil, fmt.Errorf("rules: rule %d has no name", i)
		}
		if !r.Severity.Valid() {
			return nil, fmt.Errorf("rules: rule %q has unknown severity %q", r.Name, r.Severity)
		}
		if len(r.Require) == 0 {
			return nil, fmt.Errorf("rules: rule %q requires no categories", r.Name)
		}
		for cat := range r.Require {
			if !KnownCategory(cat) {
				return nil, fmt.Errorf("rules: rule %q uses unknown category %q", r.Name, cat)
			}
		}
	}
	return rules, nil
}
