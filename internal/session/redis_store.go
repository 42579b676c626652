package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore persists sessions as expiring Redis keys. The TTL is Redis's
// own key expiry; no expiry bookkeeping happens on this side.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) key(sessionID string) string {
	return keyPrefix + sessionID
}

func (r *RedisStore) Set(ctx context.Context, sessionID string, data []byte, ttl time.Duration) error {
	if sessionID == "" {
		return fmt.Errorf("session: missing session id")
	}
	if ttl <= 0 {
		return fmt.Errorf("session: ttl must be positive")
	}

	return r.client.Set(ctx, r.key(sessionID), data, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Refresh re-arms the key's TTL via EXPIRE. EXPIRE on a missing key
// returns false and creates nothing, which is exactly the sliding-window
// contract.
func (r *RedisStore) Refresh(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	return r.client.Expire(ctx, r.key(sessionID), ttl).Result()
}

func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.key(sessionID)).Err()
}
