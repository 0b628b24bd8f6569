// Package metrics exposes Prometheus instrumentation for the pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"siem-core/pkg/logger"
)

// Metrics holds the pipeline counters. One instance per process.
type Metrics struct {
	EventsIngested  *prometheus.CounterVec
	EventsDropped   prometheus.Counter
	AlertsEmitted   *prometheus.CounterVec
	ActionsExecuted *prometheus.CounterVec

	reg *prometheus.Registry
}

// New registers the pipeline counters with a fresh registry.
func New() *Metrics {
	m := &Metrics{
		EventsIngested: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siem_events_ingested_total",
				Help: "Normalized events ingested, by source type.",
			},
			[]string{"source_type"},
		),
		EventsDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "siem_events_dropped_total",
				Help: "Events dropped because the store rejected them.",
			},
		),
		AlertsEmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siem_alerts_total",
				Help: "Correlation alerts emitted, by rule name.",
			},
			[]string{"rule"},
		),
		ActionsExecuted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siem_response_actions_total",
				Help: "Response actions executed, by action and status.",
			},
			[]string{"action", "status"},
		),
	}
	m.reg = prometheus.NewRegistry()
	m.reg.MustRegister(m.EventsIngested, m.EventsDropped, m.AlertsEmitted, m.ActionsExecuted)
	return m
}

// Serve exposes /metrics on addr. Blocks; run on its own goroutine.
func (m *Metrics) Serve(addr string) error {
	log := logger.New("metrics")
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Infof("listening on %s", addr)
	return srv.ListenAndServe()
}
