package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMapValue(t *testing.T) {
	t.Run("nil map stored as empty object", func(t *testing.T) {
		var m JSONMap
		v, err := m.Value()
		require.NoError(t, err)
		assert.Equal(t, "{}", v)
	})

	t.Run("marshals content", func(t *testing.T) {
		m := JSONMap{"topic": "goroutines", "num_questions": 5}
		v, err := m.Value()
		require.NoError(t, err)
		assert.Contains(t, v.(string), `"topic":"goroutines"`)
	})
}

func TestJSONMapScan(t *testing.T) {
	t.Run("bytes", func(t *testing.T) {
		var m JSONMap
		require.NoError(t, m.Scan([]byte(`{"topic":"goroutines"}`)))
		assert.Equal(t, "goroutines", m["topic"])
	})

	t.Run("string", func(t *testing.T) {
		var m JSONMap
		require.NoError(t, m.Scan(`{"succeeded":true}`))
		assert.Equal(t, true, m["succeeded"])
	})

	t.Run("nil becomes empty map", func(t *testing.T) {
		var m JSONMap
		require.NoError(t, m.Scan(nil))
		assert.NotNil(t, m)
		assert.Empty(t, m)
	})

	t.Run("json null becomes empty map", func(t *testing.T) {
		var m JSONMap
		require.NoError(t, m.Scan([]byte("null")))
		assert.Empty(t, m)
	})

	t.Run("unsupported type", func(t *testing.T) {
		var m JSONMap
		assert.Error(t, m.Scan(42))
	})
}

func TestRawJSON(t *testing.T) {
	t.Run("valid document round-trips", func(t *testing.T) {
		r := RawJSON(`{"activity_type":"QUIZ"}`)
		v, err := r.Value()
		require.NoError(t, err)

		var back RawJSON
		require.NoError(t, back.Scan(v))
		assert.JSONEq(t, string(r), string(back))
	})

	t.Run("invalid document rejected on write", func(t *testing.T) {
		r := RawJSON(`{"broken`)
		_, err := r.Value()
		assert.Error(t, err)
	})

	t.Run("empty stored as NULL", func(t *testing.T) {
		var r RawJSON
		v, err := r.Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("scan copies bytes", func(t *testing.T) {
		src := []byte(`{"a":1}`)
		var r RawJSON
		require.NoError(t, r.Scan(src))
		src[2] = 'x'
		assert.Equal(t, `{"a":1}`, string(r))
	})
}
