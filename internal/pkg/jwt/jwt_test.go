package jwt

import (
	"testing"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSETokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, 24*time.Hour, false)

	token, expiresIn, err := svc.GenerateSSEToken("e-1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	employeeID, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "e-1", employeeID)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, 24*time.Hour, false)

	access, _, err := svc.GenerateAccessToken("u-1", "a@rsi.co.id", nil, user.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err)
	_, err = svc.ValidateRefreshToken(access)
	assert.Error(t, err)

	refresh, _, err := svc.GenerateRefreshToken("u-1")
	require.NoError(t, err)
	userID, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
}

func TestExpiredRefreshTokenRejected(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, time.Hour, false)
	svc.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }

	refresh, _, err := svc.GenerateRefreshToken("u-1")
	require.NoError(t, err)
	_, err = svc.ValidateRefreshToken(refresh)
	assert.Error(t, err)
}

func TestOtherSecretRejected(t *testing.T) {
	a := NewJWTService("secret-a", time.Hour, time.Hour, false)
	b := NewJWTService("secret-b", time.Hour, time.Hour, false)

	refresh, _, err := a.GenerateRefreshToken("u-1")
	require.NoError(t, err)
	_, err = b.ValidateRefreshToken(refresh)
	assert.Error(t, err)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, time.Hour, true)
	cookie := svc.RefreshTokenCookie("tok", time.Now().Add(time.Hour).Unix())
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
}
