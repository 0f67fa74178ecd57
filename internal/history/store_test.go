package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"davechat/internal/conversation"
	"davechat/internal/database"
)

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.GetMigrator(db).Migrate())

	return NewStore(db), db
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	turns := []conversation.Turn{
		conversation.NewTurn(conversation.RoleUser, "hello"),
		conversation.NewTurn(conversation.RoleModel, "hi there"),
	}

	require.True(t, store.Save(ctx, "u1", turns))
	assert.Equal(t, turns, store.Load(ctx, "u1"))
}

func TestSaveUpsertsSingleRow(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	first := []conversation.Turn{conversation.NewTurn(conversation.RoleUser, "one")}
	second := append(first, conversation.NewTurn(conversation.RoleModel, "two"))

	require.True(t, store.Save(ctx, "u1", first))
	require.True(t, store.Save(ctx, "u1", second))

	var count int64
	require.NoError(t, db.Model(&database.ChatHistory{}).Where("user_id = ?", "u1").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	assert.Equal(t, second, store.Load(ctx, "u1"))
}

func TestLoadMissingUserReturnsEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Empty(t, store.Load(context.Background(), "nobody"))
}

func TestLoadCorruptPayloadReturnsEmpty(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&database.ChatHistory{
		UserId:  "u1",
		History: []byte("{not json"),
	}).Error)

	assert.Empty(t, store.Load(ctx, "u1"))
}

func TestSavePreservesPartWireForms(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	turns := []conversation.Turn{
		{Role: conversation.RoleUser, Parts: []conversation.Part{{Text: "plain"}}},
		{Role: conversation.RoleModel, Parts: []conversation.Part{{Text: "structured", Structured: true}}},
	}

	require.True(t, store.Save(ctx, "u1", turns))
	assert.Equal(t, turns, store.Load(ctx, "u1"))
}
