package ports

import (
	"context"
	"time"

	"github.com/mugstore/backoffice/internal/core/domain"
)

// AuthService implements session establishment and teardown. Both paths write
// an audit entry.
type AuthService interface {
	// Login verifies credentials, records the client IP on the account and
	// returns a signed token plus the authenticated user.
	Login(ctx context.Context, username, password, clientIP string) (string, *domain.User, error)
	// Logout revokes the presented token until its natural expiry.
	Logout(ctx context.Context, actor Actor, tokenID string, expiresAt time.Time) error
}

// TokenRevoker tracks revoked token IDs so logged-out tokens stop working
// before they expire.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
