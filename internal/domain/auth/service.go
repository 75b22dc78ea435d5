package auth

import (
	"context"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error

	// GoogleRedirect starts Google sign-in.
	GoogleRedirect() (GoogleRedirect, error)
	// LoginWithGoogle signs in the provisioned account whose email matches
	// the verified Google account, linking the two on first use. The caller
	// checks req.State against the one issued by GoogleRedirect.
	LoginWithGoogle(ctx context.Context, req GoogleLoginRequest, session SessionTrackingRequest) (TokenResponse, error)

	// CreateAccount provisions a login, optionally linked to an employee.
	// There is no self sign-up; accounts are created by operators.
	CreateAccount(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error)
	// ResetPassword replaces the password of the account with email and
	// revokes its refresh tokens.
	ResetPassword(ctx context.Context, email, password string) error
}
