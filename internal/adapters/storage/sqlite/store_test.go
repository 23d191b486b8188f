package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "scratch.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestPutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := openTempStore(t)

	_, err := store.Get(ctx, "election_autosave")
	assert.ErrorIs(t, err, domain.ErrSlotEmpty)

	require.NoError(t, store.Put(ctx, "election_autosave", []byte(`{"v":1}`)))
	require.NoError(t, store.Put(ctx, "election_autosave", []byte(`{"v":2}`)))

	got, err := store.Get(ctx, "election_autosave")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got))

	require.NoError(t, store.Delete(ctx, "election_autosave"))
	_, err = store.Get(ctx, "election_autosave")
	assert.ErrorIs(t, err, domain.ErrSlotEmpty)
}

func TestReopenKeepsSlots(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scratch.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "k", []byte("payload")))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
}

func TestNilStoreIsNotConfigured(t *testing.T) {
	var store *Store
	_, err := store.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.NoError(t, store.Close())
}
