package domain

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
)

// DefaultSnapshotFile is the file name of the persisted configuration
// snapshot inside the charm directory.
const DefaultSnapshotFile = ".juju-persistent-config"

// ConfigSnapshot holds the configuration visible to the running hook and,
// once loaded, the configuration persisted by an earlier hook.
//
// The zero value is not usable; construct with NewConfigSnapshot.
type ConfigSnapshot struct {
	current  map[string]any
	previous map[string]any
	deleted  map[string]struct{}
}

// NewConfigSnapshot creates a snapshot seeded with a copy of values.
// A nil map yields an empty snapshot. No baseline is loaded.
func NewConfigSnapshot(values map[string]any) *ConfigSnapshot {
	return &ConfigSnapshot{
		current: copyMap(values),
		deleted: make(map[string]struct{}),
	}
}

// Get returns the current value for key, or def if the key is absent.
func (c *ConfigSnapshot) Get(key string, def any) any {
	if v, ok := c.current[key]; ok {
		return v
	}
	return def
}

// Lookup returns the current value for key or ErrKeyNotFound.
func (c *ConfigSnapshot) Lookup(key string) (any, error) {
	v, ok := c.current[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return v, nil
}

// Contains reports whether key is present in the current values.
// The previous snapshot is not consulted.
func (c *ConfigSnapshot) Contains(key string) bool {
	_, ok := c.current[key]
	return ok
}

// Set assigns value to key.
func (c *ConfigSnapshot) Set(key string, value any) {
	c.current[key] = value
	delete(c.deleted, key)
}

// Delete removes key from the current values and records the removal so
// that the next save also drops it from storage.
func (c *ConfigSnapshot) Delete(key string) {
	delete(c.current, key)
	c.deleted[key] = struct{}{}
}

// Keys returns the current keys in sorted order.
func (c *ConfigSnapshot) Keys() []string {
	return sortedKeys(c.current)
}

// Len returns the number of current keys.
func (c *ConfigSnapshot) Len() int {
	return len(c.current)
}

// Data returns a copy of the current values.
func (c *ConfigSnapshot) Data() map[string]any {
	return copyMap(c.current)
}

// Deleted returns the keys removed since construction or the last Absorb,
// in sorted order.
func (c *ConfigSnapshot) Deleted() []string {
	keys := make([]string, 0, len(c.deleted))
	for k := range c.deleted {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetPrevious installs prev as the baseline used by Changed and Previous.
// A nil map installs an empty baseline. Persisted keys missing from the
// current values are carried forward unless they were deleted.
func (c *ConfigSnapshot) SetPrevious(prev map[string]any) {
	c.previous = copyMap(prev)
	for k, v := range c.previous {
		if _, ok := c.current[k]; ok {
			continue
		}
		if _, ok := c.deleted[k]; ok {
			continue
		}
		c.current[k] = v
	}
}

// HasPrevious reports whether a baseline has been loaded.
func (c *ConfigSnapshot) HasPrevious() bool {
	return c.previous != nil
}

// Previous returns the baseline value for key, or nil when there is no
// baseline or the key was not persisted.
func (c *ConfigSnapshot) Previous(key string) any {
	if c.previous == nil {
		return nil
	}
	return c.previous[key]
}

// Changed reports whether key differs from the baseline. Without a
// baseline every key is considered changed. A key present on only one
// side is changed.
func (c *ConfigSnapshot) Changed(key string) bool {
	if c.previous == nil {
		return true
	}
	cur, inCurrent := c.current[key]
	prev, inPrevious := c.previous[key]
	if inCurrent != inPrevious {
		return true
	}
	if !inCurrent {
		return false
	}
	return !ValuesEqual(cur, prev)
}

// Absorb replaces the current values with the merged mapping written by a
// save and clears pending deletions.
func (c *ConfigSnapshot) Absorb(merged map[string]any) {
	c.current = copyMap(merged)
	c.deleted = make(map[string]struct{})
}

// ValuesEqual compares two configuration values in the form they take
// after a trip through the snapshot file, so an int set in code equals the
// float64 decoded from disk even beyond float64 precision.
func ValuesEqual(a, b any) bool {
	ja, errA := persistedJSON(a)
	jb, errB := persistedJSON(b)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}
	return bytes.Equal(ja, jb)
}

// persistedJSON encodes v as it would read back from a snapshot: numbers
// collapse to float64 and map keys are sorted.
func persistedJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return json.Marshal(decoded)
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
