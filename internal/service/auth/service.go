package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/user"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/jwt"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/oauth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

// Transactor runs fn inside a single database transaction.
type Transactor func(ctx context.Context, fn func(ctx context.Context) error) error

type AuthServiceImpl struct {
	inTx   Transactor
	users  user.UserRepository
	jwt    jwt.Service
	tokens auth.RefreshTokenRepository
	google oauth.GoogleService
}

// NewAuthService builds the auth service. A nil google disables Google
// sign-in.
func NewAuthService(inTx Transactor, users user.UserRepository, jwtService jwt.Service, tokens auth.RefreshTokenRepository, google oauth.GoogleService) auth.AuthService {
	return &AuthServiceImpl{inTx: inTx, users: users, jwt: jwtService, tokens: tokens, google: google}
}

// HashPassword bcrypt-hashes a plain password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userData, err := a.users.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == "" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	tokenResponse, err := a.issueTokens(ctx, userData, sessionTrackReq)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	slog.Info("user logged in", "user_id", userData.ID, "ip", sessionTrackReq.IPAddress)
	return tokenResponse, nil
}

// GoogleRedirect implements auth.AuthService.
func (a *AuthServiceImpl) GoogleRedirect() (auth.GoogleRedirect, error) {
	if a.google == nil {
		return auth.GoogleRedirect{}, auth.ErrGoogleLoginDisabled
	}
	state, err := a.google.GenerateState()
	if err != nil {
		return auth.GoogleRedirect{}, err
	}
	return auth.GoogleRedirect{URL: a.google.RedirectURL(state), State: state}, nil
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, req auth.GoogleLoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if a.google == nil {
		return auth.TokenResponse{}, auth.ErrGoogleLoginDisabled
	}
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	info, err := a.google.VerifyUser(ctx, req.Code)
	if err != nil {
		slog.Warn("google verification failed", "error", err)
		return auth.TokenResponse{}, auth.ErrGoogleSignInFailed
	}
	if !info.VerifiedEmail {
		return auth.TokenResponse{}, auth.ErrGoogleEmailUnverified
	}

	userData, err := a.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(info.Email)))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrAccountNotProvisioned
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	switch {
	case userData.GoogleID == nil:
		userData, err = a.users.LinkGoogleAccount(ctx, userData.ID, info.GoogleID)
		if err != nil {
			return auth.TokenResponse{}, err
		}
		slog.Info("google account linked", "user_id", userData.ID)
	case *userData.GoogleID != info.GoogleID:
		return auth.TokenResponse{}, auth.ErrGoogleAccountMismatch
	}

	tokenResponse, err := a.issueTokens(ctx, userData, sessionTrackReq)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	slog.Info("user logged in with google", "user_id", userData.ID, "ip", sessionTrackReq.IPAddress)
	return tokenResponse, nil
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	err := a.inTx(ctx, func(txCtx context.Context) error {
		var err error
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.jwt.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.jwt.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.tokens.Save(txCtx, userData.ID, tokenResponse.RefreshToken, time.Unix(tokenResponse.RefreshTokenExpiresIn, 0), sessionTrackReq); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return tokenResponse, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	var accessTokenResponse auth.AccessTokenResponse

	userID, err := a.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	isRevoked, err := a.tokens.IsRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if isRevoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrUserNotFound
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	accessTokenResponse.AccessToken, accessTokenResponse.AccessTokenExpiresIn, err =
		a.jwt.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessTokenResponse, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return auth.ErrInvalidToken
	}
	if err := a.tokens.Revoke(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// CreateAccount implements auth.AuthService.
func (a *AuthServiceImpl) CreateAccount(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.users.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		EmployeeID:   req.EmployeeID,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("account created", "user_id", created.ID, "role", created.Role)
	return user.NewUserResponse(created), nil
}

// ResetPassword implements auth.AuthService.
func (a *AuthServiceImpl) ResetPassword(ctx context.Context, email, password string) error {
	if msg := user.PasswordProblem(password); msg != "" {
		var errs validator.ValidationErrors
		errs.Add("password", msg)
		return errs
	}

	account, err := a.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	err = a.inTx(ctx, func(txCtx context.Context) error {
		if err := a.users.UpdatePassword(txCtx, account.ID, hash); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		return a.tokens.RevokeAllForUser(txCtx, account.ID)
	})
	if err != nil {
		return err
	}

	slog.Info("password reset", "user_id", account.ID)
	return nil
}
