// Package bus publishes pipeline output to NATS and receives remote
// response commands. Everything here is optional; the pipeline runs fully
// in-process without a bus.
package bus

import (
	"encoding/json"

	"github.com/nats-io/nats.go"

	"siem-core/pkg/events"
	"siem-core/pkg/logger"
)

// Publisher sends normalized events and alerts to their subjects.
type Publisher struct {
	nc           *nats.Conn
	eventSubject string
	alertSubject string
}

// NewPublisher wraps an established connection. Empty subjects get the
// defaults siem.events / siem.alerts.
func NewPublisher(nc *nats.Conn, eventSubject, alertSubject string) *Publisher {
	if eventSubject == "" {
		eventSubject = "siem.events"
	}
	if alertSubject == "" {
		alertSubject = "siem.alerts"
	}
	return &Publisher{nc: nc, eventSubject: eventSubject, alertSubject: alertSubject}
}

// PublishEvent publishes one normalized event.
func (p *Publisher) PublishEvent(ev *events.NormalizedEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.nc.Publish(p.eventSubject, b)
}

// PublishAlert publishes one correlation alert.
func (p *Publisher) PublishAlert(alert *events.Alert) error {
	b, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	return p.nc.Publish(p.alertSubject, b)
}

// Responder executes a response action (implemented by respond.Manager).
type Responder interface {
	ExecuteAction(action, target, executor string) events.ResponseRecord
}

// CommandListener subscribes to a subject and forwards decoded response
// commands to the responder.
type CommandListener struct {
	nc      *nats.Conn
	subject string
	resp    Responder
	sub     *nats.Subscription
	log     *logger.Logger
}

// NewCommandListener creates a listener on subject (default siem.respond).
func NewCommandListener(nc *nats.Conn, subject string, resp Responder) *CommandListener {
	if subject == "" {
		subject = "siem.respond"
	}
	return &CommandListener{nc: nc, subject: subject, resp: resp, log: logger.New("bus")}
}

// Start subscribes and handles commands until Stop. Malformed commands are
// logged and dropped.
func (l *CommandListener) Start() error {
	sub, err := l.nc.Subscribe(l.subject, func(m *nats.Msg) {
		var cmd events.ResponseCommand
		if err := json.Unmarshal(m.Data, &cmd); err != nil {
			l.log.Warnf("bad command payload: %v", err)
			return
		}
		rec := l.resp.ExecuteAction(cmd.Action, cmd.Target, cmd.RequestedBy)
		l.log.Infof("command %s on %s: %s", cmd.Action, cmd.Target, rec.Status)
	})
	if err != nil {
		return err
	}
	l.sub = sub
	l.log.Infof("listening on %s", l.subject)
	return nil
}

// Stop unsubscribes.
func (l *CommandListener) Stop() {
	if l.sub != nil {
		_ = l.sub.Unsubscribe()
	}
}
