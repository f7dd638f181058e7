package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calyptra/stark-wallet/internal/storage"
)

func testStore(t *testing.T, store storage.Store) {
	t.Helper()

	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrKeyNotFound)

	exists, err := store.Has(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Set(ctx, "entropy", "value-1"))

	value, err := store.Get(ctx, "entropy")
	require.NoError(t, err)
	assert.Equal(t, "value-1", value)

	exists, err = store.Has(ctx, "entropy")
	require.NoError(t, err)
	assert.True(t, exists)

	// overwrite
	require.NoError(t, store.Set(ctx, "entropy", "value-2"))

	value, err = store.Get(ctx, "entropy")
	require.NoError(t, err)
	assert.Equal(t, "value-2", value)
}

func TestMemoryStore(t *testing.T) {
	store := storage.NewMemory()
	defer func() { require.NoError(t, store.Close()) }()

	testStore(t, store)
}

func TestBadgerStore(t *testing.T) {
	store, err := storage.NewBadger(t.TempDir())
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	testStore(t, store)
}

func TestBadgerStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir()

	store, err := storage.NewBadger(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "mnemonic", "persisted"))
	require.NoError(t, store.Close())

	reopened, err := storage.NewBadger(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, reopened.Close()) }()

	value, err := reopened.Get(ctx, "mnemonic")
	require.NoError(t, err)
	assert.Equal(t, "persisted", value)
}
