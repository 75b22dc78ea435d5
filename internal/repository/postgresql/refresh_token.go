package postgresql

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/database"
)

type refreshTokenRepository struct {
	db *database.DB
}

func NewRefreshTokenRepository(db *database.DB) auth.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (r *refreshTokenRepository) Save(ctx context.Context, userID, token string, expiresAt time.Time, session auth.SessionTrackingRequest) error {
	_, err := GetQuerier(ctx, r.db).Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at, user_agent, ip_address)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))`,
		userID, tokenDigest(token), expiresAt.UTC(), session.UserAgent, session.IPAddress)
	return err
}

func (r *refreshTokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	var live bool
	err := GetQuerier(ctx, r.db).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM refresh_tokens
			WHERE token_hash = $1 AND revoked_at IS NULL AND expires_at > NOW()
		)`, tokenDigest(token)).Scan(&live)
	if err != nil {
		return false, err
	}
	return !live, nil
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, token string) error {
	_, err := GetQuerier(ctx, r.db).Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = NOW() WHERE token_hash = $1 AND revoked_at IS NULL`,
		tokenDigest(token))
	return err
}

func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := GetQuerier(ctx, r.db).Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = NOW() WHERE user_id = $1 AND revoked_at IS NULL`,
		userID)
	return err
}
