package collector

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"siem-core/pkg/events"
)

// FirewallCollector tails a firewall log file from a remembered offset.
// Line format: ACTION SRC_IP DST_IP PORT TIME (e.g. "DENY 1.2.3.4 10.0.0.5 22 12:00:01").
type FirewallCollector struct {
	logPath  string
	interval time.Duration
	offset   int64
}

// NewFirewallCollector tails logPath. A missing file yields no events, not
// an error; the next cycle retries.
func NewFirewallCollector(logPath string, interval time.Duration) *FirewallCollector {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &FirewallCollector{logPath: logPath, interval: interval}
}

func (f *FirewallCollector) Name() string            { return "Firewall" }
func (f *FirewallCollector) SourceType() string      { return events.SourceFirewall }
func (f *FirewallCollector) Interval() time.Duration { return f.interval }

func (f *FirewallCollector) Collect() ([]events.RawEvent, error) {
	fi, err := os.Stat(f.logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("firewall log: %w", err)
	}
	// Rotated or truncated file: start over.
	if fi.Size() < f.offset {
		f.offset = 0
	}
	file, err := os.Open(f.logPath)
	if err != nil {
		return nil, fmt.Errorf("firewall log: %w", err)
	}
	defer file.Close()
	if _, err := file.Seek(f.offset, 0); err != nil {
		return nil, fmt.Errorf("firewall log seek: %w", err)
	}

	var logs []events.RawEvent
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		parts := strings.Fields(line)
		if len(parts) < 5 {
			continue
		}
		logs = append(logs, events.RawEvent{
			"raw":    line,
			"action": parts[0], // ALLOW/DENY
			"src_ip": parts[1],
			"dst_ip": parts[2],
			"port":   parts[3],
			"time":   parts[4],
		})
	}
	if err := scanner.Err(); err != nil {
		return logs, fmt.Errorf("firewall log read: %w", err)
	}
	pos, err := file.Seek(0, 1)
	if err == nil {
		f.offset = pos
	}
	return logs, nil
}
