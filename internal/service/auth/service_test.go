package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/user"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/jwt"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/oauth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return user.User{}, user.ErrUserEmailExists
		}
	}
	if u.ID == "" {
		u.ID = fmt.Sprintf("u-%d", len(f.users)+1)
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID, hash string) error {
	u := f.users[userID]
	u.PasswordHash = hash
	f.users[userID] = u
	return nil
}

func (f *fakeUserRepo) LinkGoogleAccount(_ context.Context, userID, googleID string) (user.User, error) {
	for _, existing := range f.users {
		if existing.ID != userID && existing.GoogleID != nil && *existing.GoogleID == googleID {
			return user.User{}, user.ErrGoogleAccountLinked
		}
	}
	u, ok := f.users[userID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	u.GoogleID = &googleID
	f.users[userID] = u
	return u, nil
}

type fakeGoogle struct {
	accounts map[string]oauth.GoogleInformation
}

func (fakeGoogle) GenerateState() (string, error) { return "state-123", nil }

func (fakeGoogle) RedirectURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (f fakeGoogle) VerifyUser(_ context.Context, code string) (oauth.GoogleInformation, error) {
	info, ok := f.accounts[code]
	if !ok {
		return oauth.GoogleInformation{}, errors.New("oauth2: invalid_grant")
	}
	return info, nil
}

type fakeTokenRepo struct {
	active  map[string]string
	revoked map[string]bool
	failOn  bool
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{active: map[string]string{}, revoked: map[string]bool{}}
}

func (f *fakeTokenRepo) Save(_ context.Context, userID, token string, _ time.Time, _ auth.SessionTrackingRequest) error {
	if f.failOn {
		return assert.AnError
	}
	f.active[token] = userID
	return nil
}

func (f *fakeTokenRepo) IsRevoked(_ context.Context, token string) (bool, error) {
	_, ok := f.active[token]
	return !ok || f.revoked[token], nil
}

func (f *fakeTokenRepo) Revoke(_ context.Context, token string) error {
	f.revoked[token] = true
	return nil
}

func (f *fakeTokenRepo) RevokeAllForUser(_ context.Context, userID string) error {
	for token, owner := range f.active {
		if owner == userID {
			f.revoked[token] = true
		}
	}
	return nil
}

func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func setupAuth(t *testing.T) (auth.AuthService, *fakeTokenRepo, *jwt.JWTService) {
	t.Helper()
	svc, _, tokens, jwtService := newAuth(t, nil)
	return svc, tokens, jwtService
}

func newAuth(t *testing.T, google oauth.GoogleService) (auth.AuthService, *fakeUserRepo, *fakeTokenRepo, *jwt.JWTService) {
	t.Helper()
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)
	employeeID := "e-1"
	users := &fakeUserRepo{users: map[string]user.User{
		"u-1": {ID: "u-1", Email: "perawat@rsi.co.id", PasswordHash: hash, Role: user.RoleEmployee, EmployeeID: &employeeID},
	}}
	tokens := newFakeTokenRepo()
	jwtService := jwt.NewJWTService(testSecret, time.Hour, 24*time.Hour, false)
	return NewAuthService(passthroughTx, users, jwtService, tokens, google), users, tokens, jwtService
}

func TestLogin(t *testing.T) {
	svc, tokens, jwtService := setupAuth(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, auth.LoginRequest{Email: "perawat@rsi.co.id", Password: "rahasia123"}, auth.SessionTrackingRequest{IPAddress: "127.0.0.1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Contains(t, tokens.active, resp.RefreshToken)

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	employeeID, _ := token.Get("employee_id")
	role, _ := token.Get("role")
	assert.Equal(t, "e-1", employeeID)
	assert.Equal(t, "employee", role)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, tokens, _ := setupAuth(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, auth.LoginRequest{Email: "perawat@rsi.co.id", Password: "salah12345"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "tidakada@rsi.co.id", Password: "rahasia123"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.Empty(t, tokens.active)
}

func TestLoginStoreFailure(t *testing.T) {
	svc, tokens, _ := setupAuth(t)
	tokens.failOn = true

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "perawat@rsi.co.id", Password: "rahasia123"}, auth.SessionTrackingRequest{})
	assert.Error(t, err)
}

func TestRefreshTokenAndLogout(t *testing.T) {
	svc, _, _ := setupAuth(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{Email: "perawat@rsi.co.id", Password: "rahasia123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken))

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	svc, _, _ := setupAuth(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{Email: "perawat@rsi.co.id", Password: "rahasia123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: "not-a-token"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogoutRequiresToken(t *testing.T) {
	svc, _, _ := setupAuth(t)
	assert.ErrorIs(t, svc.Logout(context.Background(), ""), auth.ErrInvalidToken)
}

func TestCreateAccountThenLogin(t *testing.T) {
	svc, _, _ := setupAuth(t)
	ctx := context.Background()
	employeeID := "0195f3a0-7b8c-7b4a-8a2b-6b8b8b8b8b8b"

	created, err := svc.CreateAccount(ctx, user.CreateUserRequest{
		Email:      " Bidan@RSI.co.id",
		Password:   "bismillah1",
		Role:       user.RoleEmployee,
		EmployeeID: &employeeID,
	})
	require.NoError(t, err)
	assert.Equal(t, "bidan@rsi.co.id", created.Email)
	assert.Equal(t, user.RoleEmployee, created.Role)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "bidan@rsi.co.id", Password: "bismillah1"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	_, err = svc.CreateAccount(ctx, user.CreateUserRequest{Email: "bidan@rsi.co.id", Password: "bismillah1", Role: user.RoleAdmin})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	_, err = svc.CreateAccount(ctx, user.CreateUserRequest{Email: "x@rsi.co.id", Password: "pendek", Role: user.RoleAdmin})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestResetPassword(t *testing.T) {
	svc, _, _ := setupAuth(t)
	ctx := context.Background()

	before, err := svc.Login(ctx, auth.LoginRequest{Email: "perawat@rsi.co.id", Password: "rahasia123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, "Perawat@rsi.co.id", "sandibaru99"))

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: before.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked, "a reset ends existing sessions")

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "perawat@rsi.co.id", Password: "rahasia123"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = svc.Login(ctx, auth.LoginRequest{Email: "perawat@rsi.co.id", Password: "sandibaru99"}, auth.SessionTrackingRequest{})
	assert.NoError(t, err)

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, svc.ResetPassword(ctx, "perawat@rsi.co.id", "short"), &verrs)
	assert.ErrorIs(t, svc.ResetPassword(ctx, "tidakada@rsi.co.id", "sandibaru99"), user.ErrUserNotFound)
}

func TestGoogleLoginDisabled(t *testing.T) {
	svc, _, _ := setupAuth(t)

	_, err := svc.GoogleRedirect()
	assert.ErrorIs(t, err, auth.ErrGoogleLoginDisabled)
	_, err = svc.LoginWithGoogle(context.Background(), auth.GoogleLoginRequest{Code: "c", State: "s"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrGoogleLoginDisabled)
}

func TestLoginWithGoogleLinksProvisionedAccount(t *testing.T) {
	google := fakeGoogle{accounts: map[string]oauth.GoogleInformation{
		"code-siti":  {GoogleID: "g-1", Email: "Perawat@rsi.co.id", VerifiedEmail: true},
		"code-other": {GoogleID: "g-2", Email: "perawat@rsi.co.id", VerifiedEmail: true},
	}}
	svc, users, tokens, jwtService := newAuth(t, google)
	ctx := context.Background()

	redirect, err := svc.GoogleRedirect()
	require.NoError(t, err)
	assert.Equal(t, "state-123", redirect.State)
	assert.Contains(t, redirect.URL, "state=state-123")

	resp, err := svc.LoginWithGoogle(ctx, auth.GoogleLoginRequest{Code: "code-siti", State: redirect.State}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.Contains(t, tokens.active, resp.RefreshToken)
	require.NotNil(t, users.users["u-1"].GoogleID)
	assert.Equal(t, "g-1", *users.users["u-1"].GoogleID)

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	employeeID, _ := token.Get("employee_id")
	assert.Equal(t, "e-1", employeeID)

	_, err = svc.LoginWithGoogle(ctx, auth.GoogleLoginRequest{Code: "code-siti", State: "s"}, auth.SessionTrackingRequest{})
	require.NoError(t, err, "a linked account signs in again")

	_, err = svc.LoginWithGoogle(ctx, auth.GoogleLoginRequest{Code: "code-other", State: "s"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrGoogleAccountMismatch)
}

func TestLoginWithGoogleRejections(t *testing.T) {
	google := fakeGoogle{accounts: map[string]oauth.GoogleInformation{
		"code-unverified": {GoogleID: "g-1", Email: "perawat@rsi.co.id"},
		"code-stranger":   {GoogleID: "g-9", Email: "tamu@gmail.com", VerifiedEmail: true},
	}}
	svc, users, tokens, _ := newAuth(t, google)
	ctx := context.Background()

	cases := []struct {
		name string
		req  auth.GoogleLoginRequest
		want error
	}{
		{"unverified email", auth.GoogleLoginRequest{Code: "code-unverified", State: "s"}, auth.ErrGoogleEmailUnverified},
		{"no account for email", auth.GoogleLoginRequest{Code: "code-stranger", State: "s"}, auth.ErrAccountNotProvisioned},
		{"code rejected by google", auth.GoogleLoginRequest{Code: "expired", State: "s"}, auth.ErrGoogleSignInFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.LoginWithGoogle(ctx, tc.req, auth.SessionTrackingRequest{})
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := svc.LoginWithGoogle(ctx, auth.GoogleLoginRequest{State: "s"}, auth.SessionTrackingRequest{})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	assert.Empty(t, tokens.active)
	assert.Nil(t, users.users["u-1"].GoogleID)
}
