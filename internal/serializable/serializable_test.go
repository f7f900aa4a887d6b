package serializable

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/hookenv/internal/core/domain"
)

func TestSerializable_JSON(t *testing.T) {
	wrapped := New(map[string]any{"bar": "baz"})

	out, err := wrapped.JSON()

	require.NoError(t, err)
	assert.Equal(t, `{"bar":"baz"}`, out)
}

func TestSerializable_YAML(t *testing.T) {
	wrapped := New(map[string]any{"bar": "baz"})

	out, err := wrapped.YAML()

	require.NoError(t, err)
	assert.Equal(t, "bar: baz\n", out)
}

func TestSerializable_Attr(t *testing.T) {
	wrapped := New(map[string]any{"bar": "baz"})

	v, err := wrapped.Attr("bar")
	require.NoError(t, err)
	assert.Equal(t, "baz", v)

	_, err = wrapped.Attr("baz")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestSerializable_MappingMethods(t *testing.T) {
	wrapped := New(map[string]any{"bar": "baz", "a": 1})

	assert.Equal(t, []string{"a", "bar"}, wrapped.Keys())
	assert.Equal(t, []any{1, "baz"}, wrapped.Values())
	assert.Equal(t, []Item{{"a", 1}, {"bar", "baz"}}, wrapped.Items())
	assert.True(t, wrapped.Contains("bar"))
	assert.False(t, wrapped.Contains("foo"))
	assert.Equal(t, 2, wrapped.Len())
}

func TestSerializable_Get(t *testing.T) {
	wrapped := New(map[string]any{"bar": "baz"})

	assert.Nil(t, wrapped.Get("foo", nil))
	assert.Equal(t, "baz", wrapped.Get("bar", nil))
	assert.Equal(t, "bla", wrapped.Get("zoo", "bla"))
}

func TestSerializable_DataIsShared(t *testing.T) {
	inner := map[string]any{"bar": "baz"}
	wrapped := New(inner)

	inner["x"] = 1

	assert.Equal(t, 1, wrapped.Data()["x"])
	clone := wrapped.Clone()
	inner["y"] = 2
	assert.False(t, clone.Contains("y"))
}

func TestSerializable_Truthy(t *testing.T) {
	assert.True(t, New(map[string]any{"foo": "bar"}).Truthy())
	assert.False(t, New(map[string]any{}).Truthy())
	assert.False(t, New(nil).Truthy())
}

func TestSerializable_Equal(t *testing.T) {
	wrapped := New(map[string]any{"bar": "baz"})

	assert.True(t, wrapped.Equal(map[string]any{"bar": "baz"}))
	assert.True(t, wrapped.Equal(wrapped.Data()))
	assert.False(t, wrapped.Equal(map[string]any{"baz": "bar"}))
	assert.False(t, wrapped.Equal(map[string]any{"bar": "baz", "x": 1}))
}

func TestSerializable_EncodingRoundTrip(t *testing.T) {
	wrapped := New(map[string]any{"bar": "baz"})

	encoded, err := json.Marshal(wrapped)
	require.NoError(t, err)

	var decoded Serializable
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.True(t, decoded.Equal(map[string]any{"bar": "baz"}))

	out, err := yaml.Marshal(wrapped)
	require.NoError(t, err)
	assert.Equal(t, "bar: baz\n", string(out))
}
