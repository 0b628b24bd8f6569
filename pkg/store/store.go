// Package store provides durable append-only persistence of normalized
// events, queryable by recency.
package store

import (
	"context"

	"siem-core/pkg/events"
)

// Store is the event sink and recency query surface. Save is a best-effort
// operation from the pipeline's point of view: the caller logs and drops on
// error, it never stalls ingestion. A duplicate event id must be rejected
// without corrupting the store.
type Store interface {
	Save(ctx context.Context, ev *events.NormalizedEvent) error
	// Recent returns up to limit events ordered by timestamp descending.
	Recent(ctx context.Context, limit int) ([]events.NormalizedEvent, error)
	Close() error
}
