//go:build unit

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	t.Run("miss", func(t *testing.T) {
		_, ok, err := s.Get(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("hit until expiry", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))

		got, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("v"), got)

		now = now.Add(time.Minute)
		_, ok, _ = s.Get(ctx, "k")
		assert.False(t, ok)
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "forever", []byte("x"), 0))
		now = now.Add(24 * time.Hour)

		_, ok, _ := s.Get(ctx, "forever")
		assert.True(t, ok)
	})
}

func TestNoopEventMarker(t *testing.T) {
	var m NoopEventMarker
	require.NoError(t, m.Mark(context.Background(), "evt_1"))
	seen, err := m.Seen(context.Background(), "evt_1")
	require.NoError(t, err)
	assert.False(t, seen)
}
