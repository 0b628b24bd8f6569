package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"siem-core/pkg/events"
)

const createEventsTable = `
	CREATE TABLE IF NOT EXISTS security_events (
		id          TEXT PRIMARY KEY,
		ts          TIMESTAMPTZ NOT NULL,
		source_type TEXT NOT NULL,
		severity    TEXT NOT NULL,
		event_name  TEXT NOT NULL,
		usr         TEXT,
		src_ip      TEXT,
		dst_ip      TEXT,
		raw_data    JSONB
	)`

// PostgresStore persists events in a security_events table. The id primary
// key makes duplicate insertion fail without touching existing rows.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres creates a store from DSN and ensures the schema exists.
func NewPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, createEventsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("store schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Save inserts one event. Each call is its own transaction.
func (s *PostgresStore) Save(ctx context.Context, ev *events.NormalizedEvent) error {
	raw, err := json.Marshal(ev.OriginalData)
	if err != nil {
		return fmt.Errorf("store marshal: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO security_events (id, ts, source_type, severity, event_name, usr, src_ip, dst_ip, raw_data)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6,''), NULLIF($7,''), NULLIF($8,''), $9)
	`, ev.ID, ev.Timestamp, ev.SourceType, string(ev.Severity), ev.EventName, ev.User, ev.SrcIP, ev.DstIP, raw)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s", ErrDuplicateID, ev.ID)
		}
		return err
	}
	return nil
}

// Recent returns the limit most recent events, newest first.
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]events.NormalizedEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, source_type, severity, event_name,
		       COALESCE(usr,''), COALESCE(src_ip,''), COALESCE(dst_ip,''), raw_data
		FROM security_events
		ORDER BY ts DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []events.NormalizedEvent
	for rows.Next() {
		var ev events.NormalizedEvent
		var sev string
		var ts time.Time
		var raw []byte
		if err := rows.Scan(&ev.ID, &ts, &ev.SourceType, &sev, &ev.EventName, &ev.User, &ev.SrcIP, &ev.DstIP, &raw); err != nil {
			return nil, err
		}
		ev.Timestamp = ts
		ev.Severity = events.Severity(sev)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &ev.OriginalData)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Close closes the db.
func (s *PostgresStore) Close() error {
	if s != nil && s.db != nil {
		return s.db.Close()
	}
	return nil
}
