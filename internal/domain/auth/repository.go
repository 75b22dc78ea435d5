package auth

import (
	"context"
	"time"
)

// RefreshTokenRepository persists issued refresh tokens so they can be
// revoked before they expire. Implementations store a digest, never the
// token itself.
type RefreshTokenRepository interface {
	Save(ctx context.Context, userID, token string, expiresAt time.Time, session SessionTrackingRequest) error
	// IsRevoked treats unknown and expired tokens as revoked.
	IsRevoked(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}
