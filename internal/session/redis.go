package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis with an idle TTL, refreshed on every
// Put. Suitable when the API runs more than one replica.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: rdb, ttl: ttl}
}

func sessionKey(id string) string {
	return fmt.Sprintf("davechat:session:%s", id)
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.redis.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// A payload we can no longer decode is as good as expired.
		slog.Error("corrupt session payload, discarding", "session_id", id, "error", err)
		return nil, nil
	}
	return &sess, nil
}

func (r *RedisStore) Put(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.redis.Set(ctx, sessionKey(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.redis.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("session del: %w", err)
	}
	return nil
}
