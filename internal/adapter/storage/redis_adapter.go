package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"little-lemon/internal/core/domain"
)

const (
	tokenKeyPrefix    = "token:"
	throttleKeyPrefix = "throttle:"
)

// fixedWindowScript counts a request against a window, creating the
// window with its TTL on first hit so the counter and expiry are set
// atomically.
var fixedWindowScript = redis.NewScript(`
local key = KEYS[1]
local window = tonumber(ARGV[1])

local count = redis.call('INCR', key)
if count == 1 then
	redis.call('EXPIRE', key, window)
end

return count
`)

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) StoreToken(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	return r.client.Set(ctx, tokenKeyPrefix+token, userID, ttl).Err()
}

func (r *RedisAdapter) LookupToken(ctx context.Context, token string) (int64, error) {
	userID, err := r.client.Get(ctx, tokenKeyPrefix+token).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, domain.ErrUnauthorized
	}
	if err != nil {
		return 0, err
	}
	return userID, nil
}

func (r *RedisAdapter) RevokeToken(ctx context.Context, token string) error {
	return r.client.Del(ctx, tokenKeyPrefix+token).Err()
}

func (r *RedisAdapter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := fixedWindowScript.Run(ctx, r.client,
		[]string{throttleKeyPrefix + key}, int(window.Seconds())).Int()
	if err != nil {
		return false, err
	}
	return count <= limit, nil
}
