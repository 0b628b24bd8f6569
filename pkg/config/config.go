// Package config provides central SIEM pipeline configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root pipeline configuration.
type Config struct {
	Collectors  CollectorsConfig  `yaml:"collectors"`
	Store       StoreConfig       `yaml:"store"`
	Correlation CorrelationConfig `yaml:"correlation"`
	Response    ResponseConfig    `yaml:"response"`
	Bus         BusConfig         `yaml:"bus"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// SourceConfig enables one collector and tunes its poll interval.
type SourceConfig struct {
	Enabled         *bool `yaml:"enabled"`
	IntervalSeconds int   `yaml:"interval"`
}

type CollectorsConfig struct {
	// Firewall tails a firewall log file. Default path "firewall.log".
	Firewall        SourceConfig `yaml:"firewall"`
	FirewallLogPath string       `yaml:"firewall_log_path"`
	WindowsEvent    SourceConfig `yaml:"windows_event"`
	Auth            SourceConfig `yaml:"auth"`
	Web             SourceConfig `yaml:"web"`
	Database        SourceConfig `yaml:"database"`
	Cloud           SourceConfig `yaml:"cloud"`
	EDR             SourceConfig `yaml:"edr"`
	Collaboration   SourceConfig `yaml:"collaboration"`
}

type StoreConfig struct {
	// Backend is "file" or "postgres". Default file.
	Backend string `yaml:"backend"`
	// Path is the append-only event log for the file backend.
	Path string `yaml:"path"`
	// PostgresDSN used when backend is postgres. POSTGRES_DSN env overrides.
	PostgresDSN string `yaml:"postgres_dsn"`
}

type CorrelationConfig struct {
	// IntervalSeconds between correlation passes. Default 30.
	IntervalSeconds int `yaml:"interval"`
	// RecentLimit is how many recent events each pass scans. Default 200.
	RecentLimit int `yaml:"recent_limit"`
	// RulesPath optional YAML rule file replacing the built-in rules.
	RulesPath string `yaml:"rules_path"`
}

type ResponseConfig struct {
	// AutoBlock executes Block_IP against alert source IPs. Default false.
	AutoBlock *bool `yaml:"auto_block"`
	// MinSeverity is the lowest alert severity that triggers auto-block. Default High.
	MinSeverity string `yaml:"min_severity"`
}

type BusConfig struct {
	Enabled        bool   `yaml:"enabled"`
	URL            string `yaml:"url"`             // e.g. nats://localhost:4222
	EventSubject   string `yaml:"event_subject"`   // default siem.events
	AlertSubject   string `yaml:"alert_subject"`   // default siem.alerts
	CommandSubject string `yaml:"command_subject"` // default siem.respond
}

type MetricsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"` // default :9102
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error. Default info.
}

// Load reads config from path. If path is empty, returns default config.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}
	return c, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Collectors: CollectorsConfig{
			Firewall:        SourceConfig{IntervalSeconds: 5},
			FirewallLogPath: "firewall.log",
			WindowsEvent:    SourceConfig{IntervalSeconds: 10},
			Auth:            SourceConfig{IntervalSeconds: 5},
			Web:             SourceConfig{IntervalSeconds: 4},
			Database:        SourceConfig{IntervalSeconds: 6},
			Cloud:           SourceConfig{IntervalSeconds: 8},
			EDR:             SourceConfig{IntervalSeconds: 12},
			Collaboration:   SourceConfig{IntervalSeconds: 15},
		},
		Store: StoreConfig{
			Backend: "file",
			Path:    "data/events.log",
		},
		Correlation: CorrelationConfig{
			IntervalSeconds: 30,
			RecentLimit:     200,
		},
		Response: ResponseConfig{
			MinSeverity: "High",
		},
		Bus: BusConfig{
			Enabled:        false,
			URL:            "nats://localhost:4222",
			EventSubject:   "siem.events",
			AlertSubject:   "siem.alerts",
			CommandSubject: "siem.respond",
		},
		Metrics: MetricsConfig{
			Enabled:    false,
			ListenAddr: ":9102",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// IsEnabled reports whether the source is on. Nil means on.
func (s SourceConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// AutoBlockEnabled reports whether alerts trigger automatic Block_IP.
func (c *Config) AutoBlockEnabled() bool {
	return c.Response.AutoBlock != nil && *c.Response.AutoBlock
}

// Validate returns an error if config is inconsistent.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "file":
		if c.Store.Path == "" {
			return fmt.Errorf("store.backend is file but store.path is empty")
		}
	case "postgres":
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("store.backend is postgres but store.postgres_dsn is empty")
		}
	default:
		return fmt.Errorf("unknown store.backend %q", c.Store.Backend)
	}
	if c.Bus.Enabled && c.Bus.URL == "" {
		return fmt.Errorf("bus.enabled is true but bus.url is empty")
	}
	if c.Metrics.Enabled && c.Metrics.ListenAddr == "" {
		return fmt.Errorf("metrics.enabled is true but metrics.listen_addr is empty")
	}
	return nil
}

// Normalize fills empty defaults and applies env overrides.
func (c *Config) Normalize() {
	if c.Store.Backend == "" {
		c.Store.Backend = "file"
	}
	// Env overrides take precedence over file values.
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		c.Store.Backend = "postgres"
		c.Store.PostgresDSN = dsn
	}
	if u := os.Getenv("NATS_URL"); u != "" && c.Bus.Enabled {
		c.Bus.URL = u
	}
	if c.Correlation.IntervalSeconds <= 0 {
		c.Correlation.IntervalSeconds = 30
	}
	if c.Correlation.RecentLimit <= 0 {
		c.Correlation.RecentLimit = 200
	}
	if c.Response.MinSeverity == "" {
		c.Response.MinSeverity = "High"
	}
	if c.Bus.EventSubject == "" {
		c.Bus.EventSubject = "siem.events"
	}
	if c.Bus.AlertSubject == "" {
		c.Bus.AlertSubject = "siem.alerts"
	}
	if c.Bus.CommandSubject == "" {
		c.Bus.CommandSubject = "siem.respond"
	}
	if c.Metrics.ListenAddr == "" {
		c.Metrics.ListenAddr = ":9102"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
