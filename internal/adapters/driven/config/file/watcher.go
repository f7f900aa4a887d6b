package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/hookenv/internal/logger"
)

// SnapshotChange is the state of a snapshot file after a change.
type SnapshotChange struct {
	Path    string
	Data    map[string]any
	Removed bool
	Err     error
}

// SnapshotWatcher reports changes to a JSON snapshot file.
type SnapshotWatcher struct {
	path string
}

// NewSnapshotWatcher creates a watcher for the snapshot at path.
func NewSnapshotWatcher(path string) *SnapshotWatcher {
	return &SnapshotWatcher{path: filepath.Clean(path)}
}

// Watch emits a change every time the snapshot is written, replaced or
// removed. The directory is watched rather than the file because saves
// replace the file by rename. The channel is closed when ctx is done.
func (w *SnapshotWatcher) Watch(ctx context.Context) (<-chan SnapshotChange, error) {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	changes := make(chan SnapshotChange)
	go func() {
		defer close(changes)
		defer fsw.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				change := w.handleEvent(event)
				if change == nil {
					continue
				}
				select {
				case changes <- *change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("snapshot watcher: %v", err)
			}
		}
	}()
	return changes, nil
}

// handleEvent maps a directory event to a snapshot change, or nil for
// events on other files and permission changes.
func (w *SnapshotWatcher) handleEvent(event fsnotify.Event) *SnapshotChange {
	if filepath.Clean(event.Name) != w.path {
		return nil
	}

	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		data, err := readSnapshot(w.path)
		if isNoSnapshot(err) {
			return &SnapshotChange{Path: w.path, Removed: true}
		}
		return &SnapshotChange{Path: w.path, Data: data, Err: err}
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return &SnapshotChange{Path: w.path, Removed: true}
	default:
		return nil
	}
}
