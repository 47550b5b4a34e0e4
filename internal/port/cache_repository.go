package port

import (
	"context"
	"time"
)

type CacheRepository interface {
	// StoreToken maps an auth token to a user id for ttl.
	StoreToken(ctx context.Context, token string, userID int64, ttl time.Duration) error

	// LookupToken resolves a token to a user id; returns
	// domain.ErrUnauthorized for unknown or expired tokens.
	LookupToken(ctx context.Context, token string) (int64, error)

	// RevokeToken removes a token; revoking an absent token is a no-op.
	RevokeToken(ctx context.Context, token string) error

	// Allow increments the fixed-window counter for key and reports
	// whether the caller is still under limit requests per window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
