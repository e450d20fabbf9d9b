package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist records revoked token ids until their natural expiry.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const blacklistKeyPrefix = "auth:revoked:"

type redisBlacklist struct {
	client *redis.Client
}

// NewRedisBlacklist backs the blacklist with Redis; entries expire with the
// token so the set never needs sweeping.
func NewRedisBlacklist(client *redis.Client) TokenBlacklist {
	return &redisBlacklist{client: client}
}

func (b *redisBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, blacklistKeyPrefix+jti, "1", ttl).Err()
}

func (b *redisBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	count, err := b.client.Exists(ctx, blacklistKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
