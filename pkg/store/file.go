package store

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"siem-core/pkg/events"
)

// ErrDuplicateID is returned by Save when the event id already exists.
var ErrDuplicateID = errors.New("duplicate event id")

// FileStore is an append-only JSON-lines event log with an in-memory id
// index. Safe for concurrent Save calls from multiple collector callbacks.
type FileStore struct {
	mu   sync.Mutex
	path string
	f    *os.File
	ids  map[string]struct{}
}

// NewFileStore opens (or creates) the event log at path. Existing records
// are scanned to rebuild the id index, so duplicate rejection survives
// restarts.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("store dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("store open: %w", err)
	}
	s := &FileStore{path: path, f: f, ids: make(map[string]struct{})}
	existing, err := s.readAll()
	if err != nil {
		f.Close()
		return nil, err
	}
	for i := range existing {
		s.ids[existing[i].ID] = struct{}{}
	}
	return s, nil
}

// Save appends one event. A reused id is rejected and the log is left
// intact.
func (s *FileStore) Save(_ context.Context, ev *events.NormalizedEvent) error {
	line, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("store marshal: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return fmt.Errorf("store is closed")
	}
	if _, dup := s.ids[ev.ID]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateID, ev.ID)
	}
	if _, err := s.f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("store write: %w", err)
	}
	s.ids[ev.ID] = struct{}{}
	return nil
}

// Recent returns the limit most recent events, newest first.
func (s *FileStore) Recent(_ context.Context, limit int) ([]events.NormalizedEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	s.mu.Lock()
	if s.f != nil {
		_ = s.f.Sync()
	}
	s.mu.Unlock()
	all, err := s.readAll()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Close flushes and closes the log file.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	_ = s.f.Sync()
	err := s.f.Close()
	s.f = nil
	return err
}

func (s *FileStore) readAll() ([]events.NormalizedEvent, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store read: %w", err)
	}
	defer f.Close()
	var out []events.NormalizedEvent
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev events.NormalizedEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			// A torn last line from a crash is skipped, not fatal.
			continue
		}
		out = append(out, ev)
	}
	if err := scanner.Err(); err != nil {
		return out, fmt.Errorf("store scan: %w", err)
	}
	return out, nil
}
