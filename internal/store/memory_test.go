package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV_PutGetRoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "user:1", []byte("value")))

	got, err := kv.Get(ctx, "user:1")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
}

func TestMemoryKV_GetMissingKey(t *testing.T) {
	kv := NewMemoryKV()

	_, err := kv.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryKV_PutOverwrites(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "k", []byte("old")))
	require.NoError(t, kv.Put(ctx, "k", []byte("new")))

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestMemoryKV_DeleteIsIdempotent(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "k", []byte("v")))
	require.NoError(t, kv.Delete(ctx, "k"))
	require.NoError(t, kv.Delete(ctx, "k"))

	_, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

// TestMemoryKV_DefensiveCopies verifies that callers cannot mutate stored
// values through the slices they passed in or received.
func TestMemoryKV_DefensiveCopies(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	original := []byte("immutable")
	require.NoError(t, kv.Put(ctx, "k", original))
	original[0] = 'X'

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), got)

	got[0] = 'Y'

	again, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), again)
}
