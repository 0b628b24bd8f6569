package collector

import (
	"fmt"
	"math/rand"
	"time"

	"siem-core/pkg/events"
)

// DatabaseCollector simulates database audit logs (query auditing).
type DatabaseCollector struct {
	interval time.Duration
	rng      *rand.Rand
	queries  []string
	dbUsers  []string
}

func NewDatabaseCollector(interval time.Duration) *DatabaseCollector {
	if interval <= 0 {
		interval = 6 * time.Second
	}
	return &DatabaseCollector{
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		queries: []string{
			"SELECT * FROM customers",
			"SELECT * FROM credit_cards",
			"UPDATE users SET role='admin'",
			"DROP TABLE audit_log",
			"SELECT password_hash FROM users",
		},
		dbUsers: []string{"app_user", "report_svc", "dba_admin", "backup_user"},
	}
}

func (d *DatabaseCollector) Name() string            { return "Database_Audit" }
func (d *DatabaseCollector) SourceType() string      { return events.SourceDatabase }
func (d *DatabaseCollector) Interval() time.Duration { return d.interval }

func (d *DatabaseCollector) Collect() ([]events.RawEvent, error) {
	// 40% chance per cycle.
	if d.rng.Float64() <= 0.6 {
		return nil, nil
	}
	query := d.queries[d.rng.Intn(len(d.queries))]
	rows := d.rng.Intn(5000)
	log := events.RawEvent{
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"db_user":       d.dbUsers[d.rng.Intn(len(d.dbUsers))],
		"query":         query,
		"client_ip":     fmt.Sprintf("172.16.0.%d", 2+d.rng.Intn(250)),
		"rows_affected": rows,
		"database":      "production",
	}
	return []events.RawEvent{log}, nil
}
