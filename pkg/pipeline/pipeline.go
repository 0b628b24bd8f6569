// Package pipeline wires collectors to normalization, storage, correlation,
// and response. The sink runs on whatever goroutine a collector delivers
// from; the correlation pass runs on its own schedule or on demand.
package pipeline

import (
	"context"
	"time"

	"siem-core/pkg/bus"
	"siem-core/pkg/collector"
	"siem-core/pkg/correlate"
	"siem-core/pkg/events"
	"siem-core/pkg/intel"
	"siem-core/pkg/logger"
	"siem-core/pkg/metrics"
	"siem-core/pkg/normalize"
	"siem-core/pkg/respond"
	"siem-core/pkg/store"
)

// Options configures a pipeline. Store, Engine, and Responder are required;
// the rest are optional.
type Options struct {
	Store     store.Store
	Engine    *correlate.Engine
	Responder *respond.Manager
	Intel     *intel.Feed
	Metrics   *metrics.Metrics
	Publisher *bus.Publisher

	// AutoBlock executes Block_IP against the source IP of every alert at
	// or above MinSeverity.
	AutoBlock   bool
	MinSeverity events.Severity

	// Correlation pass cadence and scan depth.
	Interval    time.Duration
	RecentLimit int
}

// Pipeline owns the ingestion path and the correlation pass.
type Pipeline struct {
	opts Options
	log  *logger.Logger
}

// New creates a pipeline.
func New(opts Options) *Pipeline {
	if opts.Interval <= 0 {
		opts.Interval = 30 * time.Second
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = 200
	}
	if opts.MinSeverity == "" {
		opts.MinSeverity = events.SeverityHigh
	}
	return &Pipeline{opts: opts, log: logger.New("pipeline")}
}

// Sink returns the collector sink: normalize, enrich, store, publish.
// Storage failures are logged and swallowed; ingestion never stalls on a
// single save.
func (p *Pipeline) Sink() collector.Sink {
	return func(raw events.RawEvent, sourceType string) {
		norm := normalize.Normalize(raw, sourceType)
		if p.opts.Intel != nil && norm.SrcIP != "" {
			if m := p.opts.Intel.CheckIP(norm.SrcIP); m.Matched {
				norm.Severity = norm.Severity.Max(m.Severity)
				p.log.Warnf("threat intel match for %s: %s (%s)", norm.SrcIP, m.Type, m.Details)
			}
		}
		if err := p.opts.Store.Save(context.Background(), &norm); err != nil {
			p.log.Errorf("save %s: %v (event dropped)", norm.ID, err)
			if p.opts.Metrics != nil {
				p.opts.Metrics.EventsDropped.Inc()
			}
			return
		}
		if p.opts.Metrics != nil {
			p.opts.Metrics.EventsIngested.WithLabelValues(sourceType).Inc()
		}
		if p.opts.Publisher != nil {
			if err := p.opts.Publisher.PublishEvent(&norm); err != nil {
				p.log.Warnf("publish event: %v", err)
			}
		}
	}
}

// CorrelateOnce runs a single correlation pass over the most recent events
// and handles the resulting alerts. Exposed for external schedulers and
// request handlers.
func (p *Pipeline) CorrelateOnce(ctx context.Context) ([]events.Alert, error) {
	recent, err := p.opts.Store.Recent(ctx, p.opts.RecentLimit)
	if err != nil {
		return nil, err
	}
	alerts := p.opts.Engine.Correlate(recent)
	for i := range alerts {
		p.handleAlert(&alerts[i])
	}
	return alerts, nil
}

// RunCorrelation runs correlation passes every interval until ctx is done.
func (p *Pipeline) RunCorrelation(ctx context.Context) {
	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := p.CorrelateOnce(ctx); err != nil {
				p.log.Errorf("correlation pass: %v", err)
			}
		}
	}
}

func (p *Pipeline) handleAlert(alert *events.Alert) {
	p.log.Warnf("alert: %s %s source_ip=%s", alert.Severity, alert.Name, alert.SourceIP)
	if p.opts.Metrics != nil {
		p.opts.Metrics.AlertsEmitted.WithLabelValues(alert.Name).Inc()
	}
	if p.opts.Publisher != nil {
		if err := p.opts.Publisher.PublishAlert(alert); err != nil {
			p.log.Warnf("publish alert: %v", err)
		}
	}
	if p.opts.AutoBlock && alert.SourceIP != "" && alert.Severity.AtLeast(p.opts.MinSeverity) {
		rec := p.opts.Responder.ExecuteAction(events.ActionBlockIP, alert.SourceIP, "AutoResponder")
		if p.opts.Metrics != nil {
			p.opts.Metrics.ActionsExecuted.WithLabelValues(rec.Action, rec.Status).Inc()
		}
	}
}
