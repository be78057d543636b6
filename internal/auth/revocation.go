// AngelaMos | 2026
// revocation.go

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/carterperez-dev/wear-shop/internal/core"
)

// RevocationStore remembers logged-out token ids until they would have
// expired anyway.
type RevocationStore struct {
	redis *core.Redis
	now   func() time.Time
}

func NewRevocationStore(redis *core.Redis) *RevocationStore {
	return &RevocationStore{redis: redis, now: time.Now}
}

func (s *RevocationStore) Revoke(
	ctx context.Context,
	jti string,
	expiresAt time.Time,
) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	key := s.redis.Key("revoked", jti)
	if err := s.redis.Client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w: %w", core.ErrUnavailable, err)
	}

	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	key := s.redis.Key("revoked", jti)

	exists, err := s.redis.Client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("check revocation: %w: %w", core.ErrUnavailable, err)
	}

	return exists > 0, nil
}
