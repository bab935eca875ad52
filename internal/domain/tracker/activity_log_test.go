package tracker

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActivityLog(t *testing.T) {
	actorID := uuid.New()

	t.Run("creates entry with empty metadata by default", func(t *testing.T) {
		entry, err := NewActivityLog(&actorID, ActionCreate, "created asset", nil)
		require.NoError(t, err)
		assert.NotNil(t, entry.Metadata)
		assert.Empty(t, entry.Metadata)
	})

	t.Run("actor is optional", func(t *testing.T) {
		entry, err := NewActivityLog(nil, ActionOther, "system maintenance", nil)
		require.NoError(t, err)
		assert.Nil(t, entry.ActorID)
	})

	t.Run("rejects unknown action", func(t *testing.T) {
		_, err := NewActivityLog(&actorID, "archive", "msg", nil)
		require.Error(t, err)
	})

	t.Run("rejects message over 500 characters", func(t *testing.T) {
		_, err := NewActivityLog(&actorID, ActionUpdate, strings.Repeat("a", 501), nil)
		require.Error(t, err)
	})

	t.Run("accepts message of exactly 500 characters", func(t *testing.T) {
		_, err := NewActivityLog(&actorID, ActionUpdate, strings.Repeat("a", 500), nil)
		require.NoError(t, err)
	})
}

func TestMetadata_Value(t *testing.T) {
	t.Run("nil metadata serializes as empty object", func(t *testing.T) {
		var m Metadata
		v, err := m.Value()
		require.NoError(t, err)
		assert.Equal(t, "{}", v)
	})

	t.Run("round-trips through Scan", func(t *testing.T) {
		m := Metadata{"entity": "task", "field": "status"}
		v, err := m.Value()
		require.NoError(t, err)

		var out Metadata
		require.NoError(t, out.Scan(v))
		assert.Equal(t, "task", out["entity"])
	})

	t.Run("scans nil as empty map", func(t *testing.T) {
		var out Metadata
		require.NoError(t, out.Scan(nil))
		assert.NotNil(t, out)
	})
}
