// siemd: single-process SIEM pipeline. Collectors poll their sources, the
// pipeline normalizes and stores events, the correlation pass raises alerts,
// and the response manager handles remediation.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"siem-core/pkg/bus"
	"siem-core/pkg/collector"
	"siem-core/pkg/config"
	"siem-core/pkg/correlate"
	"siem-core/pkg/events"
	"siem-core/pkg/intel"
	"siem-core/pkg/logger"
	"siem-core/pkg/metrics"
	"siem-core/pkg/pipeline"
	"siem-core/pkg/respond"
	"siem-core/pkg/store"
)

var (
	configPath  = flag.String("config", "", "Path to config YAML. Empty = defaults.")
	showVersion = flag.Bool("version", false, "Print version and exit.")
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "0.1.0"

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println("siemd", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	logger.SetLevel(cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer st.Close()

	engine := correlate.NewEngine()
	if p := cfg.Correlation.RulesPath; p != "" {
		rules, err := correlate.LoadRules(p)
		if err != nil {
			log.Printf("rules %s: %v (using built-in rules)", p, err)
		} else {
			engine.SetRules(rules)
			log.Printf("rules: loaded %d from %s", len(rules), p)
		}
	}

	responder := respond.NewManager()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		go func() {
			if err := m.Serve(cfg.Metrics.ListenAddr); err != nil {
				log.Printf("metrics: %v", err)
			}
		}()
	}

	var publisher *bus.Publisher
	var cmdListener *bus.CommandListener
	if cfg.Bus.Enabled {
		nc, err := nats.Connect(cfg.Bus.URL)
		if err != nil {
			log.Fatalf("nats connect: %v", err)
		}
		defer nc.Close()
		publisher = bus.NewPublisher(nc, cfg.Bus.EventSubject, cfg.Bus.AlertSubject)
		cmdListener = bus.NewCommandListener(nc, cfg.Bus.CommandSubject, responder)
		if err := cmdListener.Start(); err != nil {
			log.Fatalf("nats subscribe: %v", err)
		}
		defer cmdListener.Stop()
	}

	pipe := pipeline.New(pipeline.Options{
		Store:       st,
		Engine:      engine,
		Responder:   responder,
		Intel:       intel.NewFeed(),
		Metrics:     m,
		Publisher:   publisher,
		AutoBlock:   cfg.AutoBlockEnabled(),
		MinSeverity: events.ParseSeverity(cfg.Response.MinSeverity),
		Interval:    time.Duration(cfg.Correlation.IntervalSeconds) * time.Second,
		RecentLimit: cfg.Correlation.RecentLimit,
	})

	mgr := collector.NewManager()
	registerCollectors(mgr, cfg)
	mgr.StartAll(pipe.Sink())
	defer mgr.StopAll()

	go pipe.RunCorrelation(ctx)

	log.Printf("siemd: running with collectors %v", mgr.Names())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("siemd: shutdown")
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.PostgresDSN)
	default:
		return store.NewFileStore(cfg.Store.Path)
	}
}

func registerCollectors(mgr *collector.Manager, cfg *config.Config) {
	c := cfg.Collectors
	if c.Firewall.IsEnabled() {
		mgr.Register(collector.NewFirewallCollector(c.FirewallLogPath, seconds(c.Firewall)))
	}
	if c.WindowsEvent.IsEnabled() {
		mgr.Register(collector.NewWindowsEventCollector("Security", seconds(c.WindowsEvent)))
	}
	if c.Auth.IsEnabled() {
		mgr.Register(collector.NewAuthCollector(seconds(c.Auth)))
	}
	if c.Web.IsEnabled() {
		mgr.Register(collector.NewWebLogCollector(seconds(c.Web)))
	}
	if c.Database.IsEnabled() {
		mgr.Register(collector.NewDatabaseCollector(seconds(c.Database)))
	}
	if c.Cloud.IsEnabled() {
		mgr.Register(collector.NewCloudCollector(seconds(c.Cloud)))
	}
	if c.EDR.IsEnabled() {
		mgr.Register(collector.NewSecurityToolCollector(seconds(c.EDR)))
	}
	if c.Collaboration.IsEnabled() {
		mgr.Register(collector.NewCollaborationCollector(seconds(c.Collaboration)))
	}
}

func seconds(s config.SourceConfig) time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}
