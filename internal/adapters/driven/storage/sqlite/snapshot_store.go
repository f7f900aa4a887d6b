package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/hookenv/internal/core/domain"
	"github.com/custodia-labs/hookenv/internal/core/ports/driven"
)

// snapshotStore implements driven.SnapshotStore.
// Each configuration key is a row whose value is the JSON encoding.
type snapshotStore struct {
	store *Store
}

var _ driven.SnapshotStore = (*snapshotStore)(nil)

// Load returns the snapshot recorded under path.
func (s *snapshotStore) Load(ctx context.Context, path string) (map[string]any, error) {
	return loadEntries(ctx, s.store.db, path)
}

// Merge upserts set, deletes the deleted keys and returns the merged entries.
func (s *snapshotStore) Merge(
	ctx context.Context, path string, set map[string]any, deleted []string,
) (map[string]any, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (path, updated_at) VALUES (?, ?)
		ON CONFLICT(path) DO UPDATE SET updated_at = excluded.updated_at
	`, path, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}

	for key, value := range set {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", key, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO snapshot_entries (path, key, value) VALUES (?, ?, ?)
			ON CONFLICT(path, key) DO UPDATE SET value = excluded.value
		`, path, key, string(encoded))
		if err != nil {
			return nil, fmt.Errorf("saving %q: %w", key, err)
		}
	}

	for _, key := range deleted {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM snapshot_entries WHERE path = ? AND key = ?", path, key); err != nil {
			return nil, fmt.Errorf("deleting %q: %w", key, err)
		}
	}

	merged, err := loadEntries(ctx, tx, path)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing snapshot: %w", err)
	}
	return merged, nil
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func loadEntries(ctx context.Context, q queryer, path string) (map[string]any, error) {
	var exists int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM snapshots WHERE path = ?", path).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoSnapshot, path)
	}
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}

	rows, err := q.QueryContext(ctx, "SELECT key, value FROM snapshot_entries WHERE path = ?", path)
	if err != nil {
		return nil, fmt.Errorf("querying snapshot entries: %w", err)
	}
	defer rows.Close()

	data := make(map[string]any)
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("scanning snapshot entry: %w", err)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("decoding %q: %w", key, err)
		}
		data[key] = value
	}
	return data, rows.Err()
}
