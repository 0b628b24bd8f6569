// Package correlate provides rule-based pattern detection over batches of
// normalized events grouped by a shared IP key.
package correlate

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"siem-core/pkg/events"
)

// Category names one countable event class inside a group. Rules are
// thresholds over these counts, so a rule is data, not code.
type Category string

const (
	CategoryFailedLogon    Category = "failed_logon"
	CategoryFirewallDeny   Category = "firewall_deny"
	CategoryThreatDetected Category = "threat_detected"
	CategoryWebError       Category = "web_error"
)

// categoryMatchers is the fixed classification table. Matchers look at both
// the canonical fields and the retained raw data, since several sources
// carry the signal only in their original shape.
var categoryMatchers = map[Category]func(ev *events.NormalizedEvent) bool{
	CategoryFailedLogon: func(ev *events.NormalizedEvent) bool {
		if ev.EventName == "Logon Failed" || ev.OriginalData.String("event") == "Logon Failed" {
			return true
		}
		status, ok := ev.OriginalData.Int("status")
		return ok && status == 401
	},
	CategoryFirewallDeny: func(ev *events.NormalizedEvent) bool {
		return ev.EventName == "DENY" || ev.OriginalData.String("action") == "DENY"
	},
	CategoryThreatDetected: func(ev *events.NormalizedEvent) bool {
		if ev.SourceType == events.SourceEDR && ev.OriginalData.String("threat_name") != "" {
			return true
		}
		return ev.EventName == "Phishing Email Detected" ||
			ev.OriginalData.String("event_type") == "Phishing Email Detected"
	},
	CategoryWebError: func(ev *events.NormalizedEvent) bool {
		status, ok := ev.OriginalData.Int("status")
		return ok && status >= 500
	},
}

// KnownCategory reports whether name is in the classification table.
func KnownCategory(name Category) bool {
	_, ok := categoryMatchers[name]
	return ok
}

// Rule is a named threshold predicate over a group's category counts.
// Details is a template; {ip} and {<category>} placeholders are expanded
// when the rule fires.
type Rule struct {
	Name     string           `yaml:"name"`
	Severity events.Severity  `yaml:"severity"`
	Require  map[Category]int `yaml:"require"`
	Details  string           `yaml:"details"`
}

// Engine evaluates correlation rules over event batches. It keeps no state
// across calls: every Correlate call is self-contained and no alert
// deduplication happens here.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine with the built-in rule set.
func NewEngine() *Engine {
	return &Engine{rules: DefaultRules()}
}

// AddRule appends a rule. Rules within a group evaluate in this order.
func (e *Engine) AddRule(r Rule) {
	e.rules = append(e.rules, r)
}

// SetRules replaces all rules.
func (e *Engine) SetRules(rules []Rule) {
	e.rules = rules
}

// Rules returns the current rule set.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Correlate scans the batch for multi-event patterns. Events are grouped by
// correlation key (src_ip, then raw source_ip, then raw remote_addr; events
// with no key are excluded), then every group/rule pair that matches emits
// one alert. A group may trigger several rules.
func (e *Engine) Correlate(batch []events.NormalizedEvent) []events.Alert {
	groups := make(map[string][]*events.NormalizedEvent)
	for i := range batch {
		key := correlationKey(&batch[i])
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], &batch[i])
	}

	// Sorted keys keep runs reproducible; callers still must not rely on
	// alert order, only on the alert set.
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var alerts []events.Alert
	for _, ip := range keys {
		counts := countCategories(groups[ip])
		for _, r := range e.rules {
			if matches(r, counts) {
				alerts = append(alerts, events.Alert{
					Name:      r.Name,
					Severity:  r.Severity,
					SourceIP:  ip,
					Details:   expandDetails(r.Details, ip, counts),
					Timestamp: time.Now().UTC(),
				})
			}
		}
	}
	return alerts
}

func correlationKey(ev *events.NormalizedEvent) string {
	if ev.SrcIP != "" {
		return ev.SrcIP
	}
	if ip := ev.OriginalData.String("source_ip"); ip != "" {
		return ip
	}
	return ev.OriginalData.String("remote_addr")
}

func countCategories(group []*events.NormalizedEvent) map[Category]int {
	counts := make(map[Category]int, len(categoryMatchers))
	for _, ev := range group {
		for cat, match := range categoryMatchers {
			if match(ev) {
				counts[cat]++
			}
		}
	}
	return counts
}

func matches(r Rule, counts map[Category]int) bool {
	if len(r.Require) == 0 {
		return false
	}
	for cat, min := range r.Require {
		if counts[cat] < min {
			return false
		}
	}
	return true
}

func expandDetails(tmpl, ip string, counts map[Category]int) string {
	pairs := []string{"{ip}", ip}
	for cat, n := range counts {
		pairs = append(pairs, "{"+string(cat)+"}", strconv.Itoa(n))
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
