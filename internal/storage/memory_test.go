package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, ok, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "token", "abc"))
	val, ok, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", val)

	require.NoError(t, store.Delete(ctx, "token", "missing"))
	_, ok, err = store.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.Ping(ctx))
	assert.NoError(t, store.Close())
}
