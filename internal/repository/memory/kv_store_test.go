package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/repository"
	"github.com/vytor/flashdeck/internal/repository/memory"
)

var _ repository.KeyValueStore = (*memory.KeyValueStore)(nil)

func TestKeyValueStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKeyValueStore()

	_, found, err := store.Get(ctx, "classId")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "classId", "7a"))
	require.NoError(t, store.Set(ctx, "classId", "7b"))

	value, found, err := store.Get(ctx, "classId")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "7b", value)
	assert.Equal(t, 1, store.Len())
	assert.NoError(t, store.Ping(ctx))
}
