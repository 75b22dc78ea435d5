// Package jwt issues and verifies the HS256 tokens used by the API:
// access tokens for requests, refresh tokens for new access tokens and
// short-lived SSE tokens for EventSource streams.
package jwt

import (
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/user"
)

// Token types carried in the "type" claim.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
	TypeSSE     = "sse"
)

const (
	sseTokenTTL = 5 * time.Minute
	clockSkew   = 30 * time.Second
)

type Service interface {
	GenerateAccessToken(userID string, email string, employeeID *string, role user.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	// ValidateRefreshToken returns the subject user id.
	ValidateRefreshToken(tokenString string) (userID string, err error)
	GenerateSSEToken(employeeID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (employeeID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
}

type JWTService struct {
	auth         *jwtauth.JWTAuth
	accessTTL    time.Duration
	refreshTTL   time.Duration
	secureCookie bool
	now          func() time.Time
}

func NewJWTService(secretKey string, accessTTL, refreshTTL time.Duration, secureCookie bool) *JWTService {
	return &JWTService{
		auth:         jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(clockSkew)),
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
		secureCookie: secureCookie,
		now:          time.Now,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.auth
}

// issue signs claims with the given type and lifetime and returns the
// expiry as a unix timestamp.
func (j *JWTService) issue(tokenType string, ttl time.Duration, claims map[string]any) (string, int64, error) {
	exp := j.now().Add(ttl).Unix()
	claims["type"] = tokenType
	claims["exp"] = exp
	_, signed, err := j.auth.Encode(claims)
	return signed, exp, err
}

func (j *JWTService) GenerateAccessToken(userID string, email string, employeeID *string, role user.Role) (string, int64, error) {
	var employee any
	if employeeID != nil {
		employee = *employeeID
	}
	return j.issue(TypeAccess, j.accessTTL, map[string]any{
		"user_id":     userID,
		"email":       email,
		"employee_id": employee,
		"role":        string(role),
	})
}

// GenerateRefreshToken adds a random jti so two tokens issued in the same
// second still differ.
func (j *JWTService) GenerateRefreshToken(userID string) (string, int64, error) {
	return j.issue(TypeRefresh, j.refreshTTL, map[string]any{
		"user_id": userID,
		"jti":     uuid.NewString(),
	})
}

func (j *JWTService) ValidateRefreshToken(tokenString string) (string, error) {
	return j.subject(tokenString, TypeRefresh, "user_id")
}

func (j *JWTService) GenerateSSEToken(employeeID string) (string, int, error) {
	signed, _, err := j.issue(TypeSSE, sseTokenTTL, map[string]any{"employee_id": employeeID})
	if err != nil {
		return "", 0, err
	}
	return signed, int(sseTokenTTL / time.Second), nil
}

func (j *JWTService) ValidateSSEToken(tokenString string) (string, error) {
	return j.subject(tokenString, TypeSSE, "employee_id")
}

// RefreshTokenCookie scopes the cookie to the auth routes.
func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

// subject verifies signature, expiry and type, then returns the named
// string claim.
func (j *JWTService) subject(tokenString, tokenType, claim string) (string, error) {
	token, err := jwtauth.VerifyToken(j.auth, tokenString)
	if err != nil {
		return "", err
	}
	if got, _ := token.Get("type"); got != tokenType {
		return "", jwt.ErrInvalidJWT()
	}
	raw, _ := token.Get(claim)
	value, ok := raw.(string)
	if !ok || value == "" {
		return "", jwt.ErrInvalidJWT()
	}
	return value, nil
}
