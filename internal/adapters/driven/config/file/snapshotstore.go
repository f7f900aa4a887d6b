package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/hookenv/internal/core/domain"
	"github.com/custodia-labs/hookenv/internal/core/ports/driven"
	"github.com/custodia-labs/hookenv/internal/logger"
)

// Ensure SnapshotStore implements the interface.
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore persists configuration snapshots as JSON objects, one file
// per path. Merge holds an exclusive lock on "<path>.lock" for the whole
// read-merge-write so concurrent hooks cannot lose each other's keys.
type SnapshotStore struct{}

// NewSnapshotStore creates a JSON file snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Load reads the JSON object stored at path.
func (s *SnapshotStore) Load(_ context.Context, path string) (map[string]any, error) {
	data, err := readSnapshot(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded snapshot %s (%d keys)", path, len(data))
	return data, nil
}

// Merge writes set over the stored snapshot at path and removes deleted keys.
func (s *SnapshotStore) Merge(
	_ context.Context, path string, set map[string]any, deleted []string,
) (map[string]any, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}

	unlock, err := lockFile(path + ".lock")
	if err != nil {
		return nil, fmt.Errorf("locking snapshot %s: %w", path, err)
	}
	defer unlock()

	merged, err := readSnapshot(path)
	if err != nil {
		if !isNoSnapshot(err) {
			return nil, err
		}
		merged = make(map[string]any)
	}

	for k, v := range set {
		merged[k] = v
	}
	for _, k := range deleted {
		delete(merged, k)
	}

	if err := writeSnapshot(path, merged); err != nil {
		return nil, err
	}
	logger.Debug("saved snapshot %s (%d keys, %d deleted)", path, len(merged), len(deleted))
	return merged, nil
}

func readSnapshot(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %w", domain.ErrNoSnapshot, err)
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", path, err)
	}
	if data == nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w: not a JSON object", path, domain.ErrInvalidInput)
	}
	return data, nil
}

// writeSnapshot replaces the file at path via a temp file and rename, so a
// crash mid-write leaves the old snapshot intact.
func writeSnapshot(path string, data map[string]any) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

func isNoSnapshot(err error) bool {
	return errors.Is(err, domain.ErrNoSnapshot)
}
