package driven

import "context"

// SnapshotStore persists configuration snapshots between hook invocations.
//
// Snapshots are addressed by path. For file backends the path is the file
// itself; other backends use it as a namespace key.
type SnapshotStore interface {
	// Load returns the snapshot stored at path.
	// Returns an error wrapping domain.ErrNoSnapshot if nothing was persisted.
	Load(ctx context.Context, path string) (map[string]any, error)

	// Merge writes set over whatever is stored at path, removes the deleted
	// keys and returns the resulting mapping. Keys stored at path but absent
	// from set and deleted are kept. The read-merge-write is exclusive with
	// respect to other Merge calls on the same path.
	Merge(ctx context.Context, path string, set map[string]any, deleted []string) (map[string]any, error)
}
