// Package respond executes remediation actions and keeps an auditable
// history. Actions are simulated; a production build would call the
// firewall/IdP/EDR API here and keep the same record shape on both paths.
package respond

import (
	"fmt"
	"sync"
	"time"

	"siem-core/pkg/events"
	"siem-core/pkg/logger"
)

// successMessages is the action allow-list. Unknown actions fail closed.
var successMessages = map[string]string{
	events.ActionBlockIP:     "IP %s has been added to the Perimeter Firewall blocklist.",
	events.ActionDisableUser: "User account %s has been disabled in Active Directory.",
	events.ActionIsolateHost: "Host %s network access has been restricted to management VLAN only.",
}

// Manager executes response actions and owns the in-process history for the
// life of the process. ExecuteAction may be called concurrently.
type Manager struct {
	mu      sync.Mutex
	history []events.ResponseRecord
	log     *logger.Logger
}

// NewManager creates a response manager with empty history.
func NewManager() *Manager {
	return &Manager{log: logger.New("respond")}
}

// ExecuteAction runs the named action against target. Every call, success
// or failure, is recorded newest-first. An empty executor defaults to
// "System".
func (m *Manager) ExecuteAction(action, target, executor string) events.ResponseRecord {
	if executor == "" {
		executor = "System"
	}
	m.log.Infof("executing %s on %s by %s", action, target, executor)

	status := events.StatusSuccess
	var message string
	if tmpl, ok := successMessages[action]; ok {
		message = fmt.Sprintf(tmpl, target)
	} else {
		status = events.StatusFailed
		message = fmt.Sprintf("Unknown action: %s", action)
		m.log.Warnf("%s", message)
	}

	rec := events.ResponseRecord{
		Timestamp: time.Now().UTC(),
		Action:    action,
		Target:    target,
		Status:    status,
		Message:   message,
		Executor:  executor,
	}
	m.mu.Lock()
	m.history = append([]events.ResponseRecord{rec}, m.history...)
	m.mu.Unlock()
	return rec
}

// History returns a snapshot of the full history, newest first. Mutating
// the returned slice does not affect the manager.
func (m *Manager) History() []events.ResponseRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]events.ResponseRecord, len(m.history))
	copy(out, m.history)
	return out
}
