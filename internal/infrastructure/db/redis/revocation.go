package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevocationList implements ports.TokenRevoker on Redis. Revoked token
// IDs live only until the token would have expired anyway, so the set stays
// small without any sweeping.
// Key format: revoked:<jti>
type TokenRevocationList struct {
	client *redis.Client
}

// NewTokenRevocationList creates a TokenRevocationList wrapping the given
// Redis client.
func NewTokenRevocationList(client *redis.Client) *TokenRevocationList {
	return &TokenRevocationList{client: client}
}

// Revoke marks the token ID as revoked until the token's expiry.
func (l *TokenRevocationList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		// Already expired; nothing to deny.
		return nil
	}
	if err := l.client.Set(ctx, l.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether this token ID has been revoked.
func (l *TokenRevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := l.client.Exists(ctx, l.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (l *TokenRevocationList) key(tokenID string) string {
	return "revoked:" + tokenID
}
