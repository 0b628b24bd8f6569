// Package intel provides a static threat-intelligence feed for reputation
// lookups. The built-in feed stands in for a commercial feed a production
// deployment would sync.
package intel

import "siem-core/pkg/events"

// Match is a reputation lookup result.
type Match struct {
	Matched  bool
	Type     string
	Details  string
	Severity events.Severity
}

// Feed holds known-bad IPs and domains.
type Feed struct {
	ips     map[string]string
	domains map[string]string
}

// NewFeed returns the built-in feed.
func NewFeed() *Feed {
	return &Feed{
		ips: map[string]string{
			"192.168.1.55": "Known Command & Control (C2)",
			"45.33.22.11":  "Brute Force Botnet",
			"103.20.10.5":  "Phishing Host",
		},
		domains: map[string]string{
			"evil-bank-login.com":          "Credential Theft",
			"update-windows-patch.exe.net": "Malware Dist",
		},
	}
}

// CheckIP looks up an IP in the feed.
func (f *Feed) CheckIP(ip string) Match {
	if details, ok := f.ips[ip]; ok {
		return Match{Matched: true, Type: "Malicious IP", Details: details, Severity: events.SeverityHigh}
	}
	return Match{}
}

// CheckDomain looks up a domain in the feed.
func (f *Feed) CheckDomain(domain string) Match {
	if details, ok := f.domains[domain]; ok {
		return Match{Matched: true, Type: "Malicious Domain", Details: details, Severity: events.SeverityCritical}
	}
	return Match{}
}
