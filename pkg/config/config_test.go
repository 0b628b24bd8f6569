package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	c.Normalize()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if !c.Collectors.Auth.IsEnabled() {
		t.Error("collectors default to enabled")
	}
	if c.Store.Backend != "file" || c.Store.Path == "" {
		t.Errorf("store defaults = %+v", c.Store)
	}
	if c.AutoBlockEnabled() {
		t.Error("auto-block must default to off")
	}
}

func TestLoad_File(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	path := filepath.Join(t.TempDir(), "siem.yaml")
	content := `
collectors:
  edr:
    enabled: false
  auth:
    interval: 2
store:
  backend: file
  path: /tmp/test-events.log
correlation:
  interval: 10
response:
  auto_block: true
  min_severity: Critical
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	c.Normalize()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.Collectors.EDR.IsEnabled() {
		t.Error("edr should be disabled")
	}
	if c.Collectors.Auth.IntervalSeconds != 2 {
		t.Errorf("auth interval = %d", c.Collectors.Auth.IntervalSeconds)
	}
	if !c.AutoBlockEnabled() || c.Response.MinSeverity != "Critical" {
		t.Errorf("response = %+v", c.Response)
	}
	if c.Correlation.IntervalSeconds != 10 {
		t.Errorf("correlation interval = %d", c.Correlation.IntervalSeconds)
	}
}

func TestValidate_Rejects(t *testing.T) {
	c := Default()
	c.Store.Backend = "postgres"
	c.Store.PostgresDSN = ""
	if err := c.Validate(); err == nil {
		t.Error("postgres backend without DSN must be rejected")
	}

	c = Default()
	c.Store.Backend = "cassandra"
	if err := c.Validate(); err == nil {
		t.Error("unknown backend must be rejected")
	}
}
