package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/ballotwizard/internal/adapters/storage/file"
	"github.com/vncsmyrnk/ballotwizard/internal/adapters/storage/memory"
	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
	"github.com/vncsmyrnk/ballotwizard/internal/core/ports"
	"github.com/vncsmyrnk/ballotwizard/internal/core/services"
)

func putSnapshot(t *testing.T, store ports.ScratchStore, key string, at time.Time) {
	t.Helper()
	payload, err := json.Marshal(domain.Snapshot{
		Data:      domain.Draft{Title: "Board of directors election"},
		Timestamp: at.UTC().Format(domain.SnapshotTimeLayout),
		Version:   domain.SnapshotVersion,
	})
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), key, payload))
}

func TestInspectUsableSlot(t *testing.T) {
	store := memory.NewStore()
	opts := services.DefaultAutoSaveOptions()
	putSnapshot(t, store, opts.Key, time.Now().Add(-10*time.Minute))

	var out bytes.Buffer
	require.NoError(t, inspect(context.Background(), &out, store, opts, false))

	var v verdict
	require.NoError(t, json.Unmarshal(out.Bytes(), &v))
	assert.True(t, v.Usable)
	assert.True(t, v.IsRecent)
	assert.Equal(t, "Board of directors election", v.Title)
	assert.Positive(t, v.Score)
}

func TestInspectStaleSlotAndClear(t *testing.T) {
	store := memory.NewStore()
	opts := services.DefaultAutoSaveOptions()
	putSnapshot(t, store, opts.Key, time.Now().Add(-48*time.Hour))

	var out bytes.Buffer
	require.NoError(t, inspect(context.Background(), &out, store, opts, true))

	var v verdict
	require.NoError(t, json.Unmarshal(out.Bytes(), &v))
	assert.False(t, v.Usable)
	assert.Equal(t, opts.Key, v.Key)

	_, err := store.Get(context.Background(), opts.Key)
	assert.ErrorIs(t, err, domain.ErrSlotEmpty)
}

func TestListSlots(t *testing.T) {
	store, err := file.NewStore(t.TempDir())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, listSlots(&out, store))
	assert.JSONEq(t, `[]`, out.String())

	putSnapshot(t, store, "election_autosave", time.Now())
	putSnapshot(t, store, "election_autosave_board", time.Now())

	out.Reset()
	require.NoError(t, listSlots(&out, store))
	var keys []string
	require.NoError(t, json.Unmarshal(out.Bytes(), &keys))
	assert.ElementsMatch(t, []string{"election_autosave", "election_autosave_board"}, keys)
}
