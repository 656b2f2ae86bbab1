package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreateGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s := &Session{
		ID:        "m1",
		AccountID: 1,
		Name:      "ana",
		ExpiresAt: time.Now().UTC().Add(time.Minute),
	}
	require.NoError(t, store.Create(ctx, s))

	got, err := store.GetByID(ctx, "m1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "ana", got.Name)

	// the store hands out copies, not aliases
	got.Name = "mutated"
	again, err := store.GetByID(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, "ana", again.Name)

	require.NoError(t, store.DeleteByID(ctx, "m1"))
	gone, err := store.GetByID(ctx, "m1")
	require.NoError(t, err)
	require.Nil(t, gone)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s := &Session{ID: "m2", AccountID: 2, ExpiresAt: time.Now().UTC().Add(-time.Second)}
	require.NoError(t, store.Create(ctx, s))

	got, err := store.GetByID(ctx, "m2")
	require.NoError(t, err)
	require.Nil(t, got)
}
