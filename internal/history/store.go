package history

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"davechat/internal/conversation"
	"davechat/internal/database"
)

// Store persists one serialized turn sequence per user. Concurrent saves
// for the same user are last-writer-wins; the upsert runs in a transaction
// so a failed write never leaves a torn row.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Load returns the stored turn sequence for userID. A missing row or a
// corrupt payload yields an empty sequence; corruption is logged, never
// surfaced to the caller.
func (s *Store) Load(ctx context.Context, userID string) []conversation.Turn {
	var record database.ChatHistory
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Info("no chat history found", "user_id", userID)
		return nil
	}
	if err != nil {
		slog.Error("error loading chat history", "user_id", userID, "error", err)
		return nil
	}

	var turns []conversation.Turn
	if err := json.Unmarshal(record.History, &turns); err != nil {
		slog.Error("error decoding stored chat history", "user_id", userID, "error", err)
		return nil
	}

	slog.Info("loaded chat history", "user_id", userID, "turns", len(turns))
	return turns
}

// Save upserts the serialized history for userID and stamps the row with
// the current unix time. Returns whether the write succeeded; on failure
// the transaction is rolled back and the in-session copy stays
// authoritative.
func (s *Store) Save(ctx context.Context, userID string, turns []conversation.Turn) bool {
	payload, err := json.Marshal(turns)
	if err != nil {
		slog.Error("error encoding chat history", "user_id", userID, "error", err)
		return false
	}

	err = s.db.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		var record database.ChatHistory
		err := txn.Where("user_id = ?", userID).First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return txn.Create(&database.ChatHistory{
				UserId:      userID,
				History:     datatypes.JSON(payload),
				LastUpdated: time.Now().Unix(),
			}).Error
		}
		if err != nil {
			return err
		}

		return txn.Model(&record).Updates(map[string]any{
			"history":      datatypes.JSON(payload),
			"last_updated": time.Now().Unix(),
		}).Error
	})
	if err != nil {
		slog.Error("error saving chat history", "user_id", userID, "error", err)
		return false
	}

	slog.Info("saved chat history", "user_id", userID, "turns", len(turns))
	return true
}
