package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/custodia-labs/hookenv/internal/core/domain"
	"github.com/custodia-labs/hookenv/internal/core/ports/driven"
)

// Ensure SnapshotStore implements the interface.
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is an in-memory implementation of driven.SnapshotStore for
// testing. Values are stored in their JSON encoding so loads see the same
// types a file backend would return.
type SnapshotStore struct {
	mu        sync.Mutex
	snapshots map[string]map[string][]byte

	// MergeErr, if set, is returned by Merge without touching state.
	MergeErr error
}

// NewSnapshotStore creates a new in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		snapshots: make(map[string]map[string][]byte),
	}
}

// Load returns the snapshot stored at path.
func (s *SnapshotStore) Load(_ context.Context, path string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.snapshots[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoSnapshot, path)
	}
	return decodeEntries(entries)
}

// Merge writes set over the snapshot at path and removes deleted keys.
func (s *SnapshotStore) Merge(
	_ context.Context, path string, set map[string]any, deleted []string,
) (map[string]any, error) {
	if s.MergeErr != nil {
		return nil, s.MergeErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make(map[string][]byte)
	for k, v := range s.snapshots[path] {
		entries[k] = v
	}
	for k, v := range set {
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", k, err)
		}
		entries[k] = encoded
	}
	for _, k := range deleted {
		delete(entries, k)
	}

	s.snapshots[path] = entries
	return decodeEntries(entries)
}

// Put replaces the snapshot at path. Useful to seed tests.
func (s *SnapshotStore) Put(path string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make(map[string][]byte, len(data))
	for k, v := range data {
		encoded, err := json.Marshal(v)
		if err != nil {
			return err
		}
		entries[k] = encoded
	}
	s.snapshots[path] = entries
	return nil
}

func decodeEntries(entries map[string][]byte) (map[string]any, error) {
	out := make(map[string]any, len(entries))
	for k, raw := range entries {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decoding %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}
