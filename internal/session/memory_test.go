package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"davechat/internal/conversation"
)

func TestMemoryStorePutGetDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess := New()
	sess.GuestMessageCount = 2
	sess.History = []conversation.Turn{conversation.NewTurn(conversation.RoleUser, "hi")}
	require.NoError(t, store.Put(ctx, sess))

	loaded, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, sess.ID, loaded.ID)
	assert.Equal(t, 2, loaded.GuestMessageCount)
	assert.Equal(t, sess.History, loaded.History)

	require.NoError(t, store.Delete(ctx, sess.ID))
	loaded, err = store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemoryStoreGetReturnsIndependentCopy(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess := New()
	sess.History = []conversation.Turn{conversation.NewTurn(conversation.RoleUser, "hi")}
	require.NoError(t, store.Put(ctx, sess))

	first, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	first.History = conversation.Append(first.History, conversation.RoleModel, "mutated")

	second, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Len(t, second.History, 1)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	sess := New()
	require.NoError(t, store.Put(ctx, sess))

	now = now.Add(30 * time.Second)
	loaded, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.NotNil(t, loaded)

	now = now.Add(2 * time.Minute)
	loaded, err = store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemoryStorePutRefreshesTTL(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	sess := New()
	require.NoError(t, store.Put(ctx, sess))

	now = now.Add(45 * time.Second)
	require.NoError(t, store.Put(ctx, sess))

	now = now.Add(45 * time.Second)
	loaded, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.NotNil(t, loaded)
}
