package collector

import (
	"sync"

	"siem-core/pkg/logger"
)

// Manager owns the set of registered collectors and their poll loops.
// Registration normally happens before StartAll; the lock only guards
// against concurrent misuse of the lifecycle calls themselves.
type Manager struct {
	mu      sync.Mutex
	runners map[string]*Runner
	order   []string
	log     *logger.Logger
}

// NewManager creates an empty registry.
func NewManager() *Manager {
	return &Manager{
		runners: make(map[string]*Runner),
		log:     logger.New("manager"),
	}
}

// Register adds a collector under its name. Re-registering a name replaces
// the previous entry; avoiding accidental overwrite is the caller's job.
func (m *Manager) Register(c Collector) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.runners[c.Name()]; ok {
		old.Stop()
	} else {
		m.order = append(m.order, c.Name())
	}
	m.runners[c.Name()] = NewRunner(c)
	m.log.Infof("registered collector: %s", c.Name())
}

// StartAll starts every registered collector. Each raw event any of them
// produces is forwarded, unmodified, to sink. The manager itself does no
// normalization; that policy belongs to whoever owns the sink.
func (m *Manager) StartAll(sink Sink) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, name := range m.order {
		m.runners[name].Start(sink)
	}
}

// StopAll stops every collector. Order is unspecified; collectors are
// independent.
func (m *Manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.runners {
		r.Stop()
	}
}

// Names returns the registered collector names in registration order.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}
