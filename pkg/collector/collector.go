// Package collector provides the log source framework: a Collector per
// source type, a Runner per poll loop, and a Manager that fans all
// collected events into a single sink.
package collector

import (
	"sync"
	"time"

	"siem-core/pkg/events"
	"siem-core/pkg/logger"
)

// joinTimeout bounds how long Stop waits for an in-flight poll to finish.
const joinTimeout = 2 * time.Second

// Sink receives every raw event a collector produces, tagged with the
// collector's source type.
type Sink func(raw events.RawEvent, sourceType string)

// Collector is one log source. Collect is called on a dedicated poll loop
// and must return quickly; it must not block indefinitely.
type Collector interface {
	// Name is a stable identifier, used as registry key.
	Name() string
	// SourceType tags events for normalization (e.g. events.SourceFirewall).
	SourceType() string
	// Interval is the delay between poll cycles.
	Interval() time.Duration
	// Collect fetches new raw events. May return an empty slice.
	Collect() ([]events.RawEvent, error)
}

// Runner drives one collector on its own goroutine. A collector error is
// logged and the loop continues with the next cycle.
type Runner struct {
	c    Collector
	log  *logger.Logger
	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewRunner wraps a collector. The runner starts Idle.
func NewRunner(c Collector) *Runner {
	return &Runner{c: c, log: logger.New("collector")}
}

// Running reports whether the poll loop is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop != nil
}

// Start begins polling, delivering events to sink. No-op if already running.
func (r *Runner) Start(sink Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		return
	}
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.run(sink, r.stop, r.done)
	r.log.Infof("%s started (interval %s)", r.c.Name(), r.c.Interval())
}

// Stop signals the loop to exit and waits up to joinTimeout for it.
// Idempotent: stopping an idle runner is a no-op.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.stop == nil {
		r.mu.Unlock()
		return
	}
	stop, done := r.stop, r.done
	r.stop = nil
	r.done = nil
	r.mu.Unlock()

	close(stop)
	select {
	case <-done:
	case <-time.After(joinTimeout):
		r.log.Warnf("%s did not stop within %s", r.c.Name(), joinTimeout)
	}
	r.log.Infof("%s stopped", r.c.Name())
}

func (r *Runner) run(sink Sink, stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(r.c.Interval())
	defer ticker.Stop()
	for {
		r.poll(sink)
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

func (r *Runner) poll(sink Sink) {
	raws, err := r.c.Collect()
	if err != nil {
		r.log.Errorf("%s: %v", r.c.Name(), err)
		return
	}
	for _, raw := range raws {
		sink(raw, r.c.SourceType())
	}
}
