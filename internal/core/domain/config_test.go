package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigSnapshot(t *testing.T) {
	c := NewConfigSnapshot(map[string]any{"foo": "bar"})

	assert.Equal(t, "bar", c.Get("foo", nil))
	assert.False(t, c.HasPrevious())
}

func TestNewConfigSnapshot_NilValues(t *testing.T) {
	c := NewConfigSnapshot(nil)

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Keys())
	assert.NotNil(t, c.Data())
}

func TestNewConfigSnapshot_CopiesInput(t *testing.T) {
	values := map[string]any{"foo": "bar"}
	c := NewConfigSnapshot(values)

	values["foo"] = "changed"

	assert.Equal(t, "bar", c.Get("foo", nil))
}

func TestConfigSnapshot_Get(t *testing.T) {
	c := NewConfigSnapshot(map[string]any{"baz": "bam", "nothing": nil})

	assert.Nil(t, c.Get("missing", nil))
	assert.Equal(t, 42, c.Get("missing", 42))
	assert.Equal(t, "bam", c.Get("baz", nil))
	assert.Nil(t, c.Get("nothing", "default"))
}

func TestConfigSnapshot_Lookup(t *testing.T) {
	c := NewConfigSnapshot(map[string]any{"baz": "bam"})

	v, err := c.Lookup("baz")
	require.NoError(t, err)
	assert.Equal(t, "bam", v)

	_, err = c.Lookup("missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfigSnapshot_SetPrevious_CarriesForwardMissingKeys(t *testing.T) {
	c := NewConfigSnapshot(map[string]any{"baz": "bam", "foo": "new"})
	c.SetPrevious(map[string]any{"foo": "old", "only": "persisted"})

	v, err := c.Lookup("only")
	require.NoError(t, err)
	assert.Equal(t, "persisted", v)
	assert.True(t, c.Contains("only"))
	assert.False(t, c.Changed("only"))

	assert.Equal(t, "new", c.Get("foo", nil))
	assert.True(t, c.Changed("foo"))
	assert.Equal(t, []string{"baz", "foo", "only"}, c.Keys())
}

func TestConfigSnapshot_SetPrevious_SkipsDeletedKeys(t *testing.T) {
	c := NewConfigSnapshot(nil)
	c.Delete("gone")
	c.SetPrevious(map[string]any{"gone": 1})

	assert.False(t, c.Contains("gone"))
	assert.True(t, c.Changed("gone"))
	assert.Equal(t, []string{"gone"}, c.Deleted())
}

func TestConfigSnapshot_SetPrevious_CopiesInput(t *testing.T) {
	prev := map[string]any{"foo": "bar"}
	c := NewConfigSnapshot(nil)
	c.SetPrevious(prev)

	prev["foo"] = "changed"
	c.Set("foo", "local")

	assert.Equal(t, "bar", c.Previous("foo"))
}

func TestConfigSnapshot_Keys(t *testing.T) {
	c := NewConfigSnapshot(map[string]any{"foo": "bar"})
	c.Set("baz", "bar")

	assert.Equal(t, []string{"baz", "foo"}, c.Keys())
}

func TestConfigSnapshot_SetDelete(t *testing.T) {
	c := NewConfigSnapshot(map[string]any{"foo": "one"})
	assert.True(t, c.Contains("foo"))
	assert.False(t, c.Contains("bar"))

	c.Set("foo", "two")
	c.Set("bar", "two")
	assert.True(t, c.Contains("foo"))
	assert.True(t, c.Contains("bar"))

	c.Delete("foo")
	assert.False(t, c.Contains("foo"))
	assert.Equal(t, []string{"foo"}, c.Deleted())

	c.Set("foo", "three")
	assert.Empty(t, c.Deleted())
}

func TestConfigSnapshot_Delete_AbsentKeyIsRecorded(t *testing.T) {
	c := NewConfigSnapshot(nil)

	c.Delete("stale")

	assert.Equal(t, []string{"stale"}, c.Deleted())
}

func TestConfigSnapshot_ChangedWithoutPrevious(t *testing.T) {
	c := NewConfigSnapshot(map[string]any{"foo": "bar", "n": 1})

	for _, k := range []string{"foo", "n", "never-set"} {
		assert.True(t, c.Changed(k), k)
	}
}

func TestConfigSnapshot_ChangedWithPrevious(t *testing.T) {
	tests := []struct {
		name     string
		current  map[string]any
		previous map[string]any
		key      string
		expected bool
	}{
		{"same value", map[string]any{"x": 1}, map[string]any{"x": 1}, "x", false},
		{"different value", map[string]any{"x": 2}, map[string]any{"x": 1}, "x", true},
		{"new key", map[string]any{"a": "b"}, map[string]any{}, "a", true},
		{"persisted key carried forward", map[string]any{}, map[string]any{"x": 1}, "x", false},
		{"absent on both sides", map[string]any{}, map[string]any{}, "x", false},
		{"int equals decoded float", map[string]any{"x": 8080}, map[string]any{"x": float64(8080)}, "x", false},
		{
			"nested equal",
			map[string]any{"x": map[string]any{"a": []any{"b"}}},
			map[string]any{"x": map[string]any{"a": []any{"b"}}},
			"x", false,
		},
		{"persisted nil carried forward", map[string]any{}, map[string]any{"x": nil}, "x", false},
		{"int beyond float precision", map[string]any{"x": int64(9007199254740993)}, map[string]any{"x": float64(9007199254740992)}, "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConfigSnapshot(tt.current)
			c.SetPrevious(tt.previous)
			assert.Equal(t, tt.expected, c.Changed(tt.key))
		})
	}
}

func TestConfigSnapshot_Previous(t *testing.T) {
	c := NewConfigSnapshot(map[string]any{"foo": "baz", "a": "b"})
	assert.Nil(t, c.Previous("foo"))

	c.SetPrevious(map[string]any{"foo": "bar"})

	assert.True(t, c.HasPrevious())
	assert.Equal(t, "bar", c.Previous("foo"))
	assert.Nil(t, c.Previous("a"))
}

func TestConfigSnapshot_SetPreviousNil(t *testing.T) {
	c := NewConfigSnapshot(map[string]any{"foo": "bar"})

	c.SetPrevious(nil)

	assert.True(t, c.HasPrevious())
	assert.True(t, c.Changed("foo"))
}

func TestConfigSnapshot_Absorb(t *testing.T) {
	c := NewConfigSnapshot(map[string]any{"b": 3})
	c.Delete("gone")

	c.Absorb(map[string]any{"a": 1, "b": 3})

	assert.Equal(t, []string{"a", "b"}, c.Keys())
	assert.Empty(t, c.Deleted())
}

func TestValuesEqual(t *testing.T) {
	assert.True(t, ValuesEqual("a", "a"))
	assert.True(t, ValuesEqual(1, 1.0))
	assert.True(t, ValuesEqual(nil, nil))
	assert.True(t, ValuesEqual(map[string]any{"a": 1, "b": 2}, map[string]any{"b": 2, "a": 1}))
	assert.False(t, ValuesEqual("1", 1))
	assert.False(t, ValuesEqual(true, "true"))
}

func TestValuesEqual_LargeIntegers(t *testing.T) {
	big := int64(9007199254740993)

	var decoded any
	require.NoError(t, json.Unmarshal([]byte("9007199254740993"), &decoded))

	assert.True(t, ValuesEqual(big, decoded))
	assert.True(t, ValuesEqual(map[string]any{"n": big}, map[string]any{"n": decoded}))
	assert.False(t, ValuesEqual(big, float64(9007199254740000)))
}
