package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.Get(ctx, "slot")
	assert.ErrorIs(t, err, domain.ErrSlotEmpty)

	value := []byte(`{"a":1}`)
	require.NoError(t, s.Put(ctx, "slot", value))
	value[0] = 'x'

	got, err := s.Get(ctx, "slot")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, s.Delete(ctx, "slot"))
	_, err = s.Get(ctx, "slot")
	assert.ErrorIs(t, err, domain.ErrSlotEmpty)
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewStore().Put(ctx, "slot", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
