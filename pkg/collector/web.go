package collector

import (
	"fmt"
	"math/rand"
	"time"

	"siem-core/pkg/events"
)

// WebLogCollector simulates web server access logs.
type WebLogCollector struct {
	interval  time.Duration
	rng       *rand.Rand
	endpoints []string
	methods   []string
	statuses  []int
}

func NewWebLogCollector(interval time.Duration) *WebLogCollector {
	if interval <= 0 {
		interval = 4 * time.Second
	}
	return &WebLogCollector{
		interval:  interval,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		endpoints: []string{"/login", "/api/v1/data", "/admin", "/index.html", "/contact"},
		methods:   []string{"GET", "POST", "PUT"},
		statuses:  []int{200, 200, 200, 401, 403, 404, 500},
	}
}

func (w *WebLogCollector) Name() string            { return "Web_Access_Logs" }
func (w *WebLogCollector) SourceType() string      { return events.SourceWeb }
func (w *WebLogCollector) Interval() time.Duration { return w.interval }

func (w *WebLogCollector) Collect() ([]events.RawEvent, error) {
	n := 1 + w.rng.Intn(5)
	logs := make([]events.RawEvent, 0, n)
	for i := 0; i < n; i++ {
		logs = append(logs, events.RawEvent{
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"remote_addr": fmt.Sprintf("10.0.0.%d", 1+w.rng.Intn(255)),
			"method":      w.methods[w.rng.Intn(len(w.methods))],
			"url":         w.endpoints[w.rng.Intn(len(w.endpoints))],
			"status":      w.statuses[w.rng.Intn(len(w.statuses))],
			"user_agent":  "Mozilla/5.0 (compatible; Bot/1.0)",
		})
	}
	return logs, nil
}
