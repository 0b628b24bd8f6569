package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"siem-core/pkg/events"
)

func testEvent(id string, ts time.Time) *events.NormalizedEvent {
	return &events.NormalizedEvent{
		ID:         id,
		Timestamp:  ts,
		SourceType: events.SourceFirewall,
		Severity:   events.SeverityMedium,
		EventName:  "DENY",
		SrcIP:      "1.2.3.4",
		OriginalData: events.RawEvent{
			"action": "DENY",
			"src_ip": "1.2.3.4",
			"port":   "22",
		},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "events.log"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	ctx := context.Background()
	ev := testEvent("ev-1", time.Now().UTC())
	if err := s.Save(ctx, ev); err != nil {
		t.Fatal(err)
	}

	got, err := s.Recent(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("recent = %d events, want 1", len(got))
	}
	if got[0].ID != "ev-1" {
		t.Errorf("id = %q", got[0].ID)
	}
	if got[0].SourceType != events.SourceFirewall {
		t.Errorf("source_type = %q", got[0].SourceType)
	}
	if !got[0].Timestamp.Equal(ev.Timestamp) {
		t.Errorf("timestamp = %v, want %v", got[0].Timestamp, ev.Timestamp)
	}
	raw := got[0].OriginalData
	if raw.String("action") != "DENY" || raw.String("src_ip") != "1.2.3.4" || raw.String("port") != "22" {
		t.Errorf("original data did not round-trip: %v", raw)
	}
}

func TestFileStore_RejectsDuplicateID(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "events.log"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	ctx := context.Background()
	now := time.Now().UTC()
	if err := s.Save(ctx, testEvent("dup", now)); err != nil {
		t.Fatal(err)
	}
	err = s.Save(ctx, testEvent("dup", now.Add(time.Second)))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}

	// The store is intact: exactly one record survives.
	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("recent = %d events, want 1", len(got))
	}
}

func TestFileStore_RecentOrderAndLimit(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "events.log"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	ctx := context.Background()
	base := time.Now().UTC()
	// Saved out of order on purpose.
	for _, d := range []int{2, 0, 4, 1, 3} {
		ev := testEvent("ev-"+string(rune('a'+d)), base.Add(time.Duration(d)*time.Second))
		if err := s.Save(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("recent = %d events, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp.After(got[i-1].Timestamp) {
			t.Errorf("recent not ordered newest first: %v after %v", got[i].Timestamp, got[i-1].Timestamp)
		}
	}
	if got[0].ID != "ev-e" {
		t.Errorf("newest id = %q, want ev-e", got[0].ID)
	}
}

func TestFileStore_IndexSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	ctx := context.Background()

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, testEvent("persisted", time.Now().UTC())); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	err = s2.Save(ctx, testEvent("persisted", time.Now().UTC()))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err after reopen = %v, want ErrDuplicateID", err)
	}
}

func TestFileStore_ConcurrentSaves(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "events.log"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	ctx := context.Background()
	done := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func(i int) {
			ev := testEvent("ev-"+string(rune('A'+i)), time.Now().UTC())
			done <- s.Save(ctx, ev)
		}(i)
	}
	for i := 0; i < 20; i++ {
		if err := <-done; err != nil {
			t.Errorf("concurrent save: %v", err)
		}
	}
	got, err := s.Recent(ctx, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 20 {
		t.Errorf("recent = %d events, want 20", len(got))
	}
}
