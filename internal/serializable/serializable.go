// Package serializable wraps relation and configuration mappings with
// accessors and JSON/YAML rendering.
package serializable

import (
	"encoding/json"
	"fmt"
	"maps"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/hookenv/internal/core/domain"
)

// Serializable is a mapping that can be rendered as JSON or YAML.
type Serializable struct {
	data map[string]any
}

// New wraps data. The map is shared, not copied; Data returns it unchanged.
func New(data map[string]any) Serializable {
	if data == nil {
		data = make(map[string]any)
	}
	return Serializable{data: data}
}

// Data returns the wrapped mapping.
func (s Serializable) Data() map[string]any {
	return s.data
}

// Get returns the value for key, or def if absent.
func (s Serializable) Get(key string, def any) any {
	if v, ok := s.data[key]; ok {
		return v
	}
	return def
}

// Attr returns the value for key or an error wrapping domain.ErrKeyNotFound.
func (s Serializable) Attr(key string) (any, error) {
	v, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrKeyNotFound, key)
	}
	return v, nil
}

// Contains reports whether key is present.
func (s Serializable) Contains(key string) bool {
	_, ok := s.data[key]
	return ok
}

// Keys returns the keys in sorted order.
func (s Serializable) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns the values ordered by key.
func (s Serializable) Values() []any {
	keys := s.Keys()
	values := make([]any, len(keys))
	for i, k := range keys {
		values[i] = s.data[k]
	}
	return values
}

// Item is a key/value pair.
type Item struct {
	Key   string
	Value any
}

// Items returns the pairs ordered by key.
func (s Serializable) Items() []Item {
	keys := s.Keys()
	items := make([]Item, len(keys))
	for i, k := range keys {
		items[i] = Item{Key: k, Value: s.data[k]}
	}
	return items
}

// Len returns the number of keys.
func (s Serializable) Len() int {
	return len(s.data)
}

// Truthy reports whether the mapping is non-empty.
func (s Serializable) Truthy() bool {
	return len(s.data) > 0
}

// Equal reports whether both mappings hold equal values.
func (s Serializable) Equal(other map[string]any) bool {
	if len(s.data) != len(other) {
		return false
	}
	for k, v := range s.data {
		ov, ok := other[k]
		if !ok || !domain.ValuesEqual(v, ov) {
			return false
		}
	}
	return true
}

// Clone returns a Serializable over a shallow copy of the mapping.
func (s Serializable) Clone() Serializable {
	return Serializable{data: maps.Clone(s.data)}
}

// JSON renders the mapping as compact JSON.
func (s Serializable) JSON() (string, error) {
	out, err := json.Marshal(s.data)
	if err != nil {
		return "", fmt.Errorf("encoding json: %w", err)
	}
	return string(out), nil
}

// YAML renders the mapping as a YAML document.
func (s Serializable) YAML() (string, error) {
	out, err := yaml.Marshal(s.data)
	if err != nil {
		return "", fmt.Errorf("encoding yaml: %w", err)
	}
	return string(out), nil
}

// MarshalJSON implements json.Marshaler.
func (s Serializable) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.data)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Serializable) UnmarshalJSON(b []byte) error {
	var data map[string]any
	if err := json.Unmarshal(b, &data); err != nil {
		return err
	}
	*s = New(data)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s Serializable) MarshalYAML() (any, error) {
	return s.data, nil
}
