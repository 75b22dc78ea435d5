package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("Email or password is incorrect")
	ErrInvalidToken        = errors.New("Session token is invalid or expired")
	ErrRefreshTokenRevoked = errors.New("Session has been signed out")
	// ErrUserNotFound is returned when a still-valid token outlives its account.
	ErrUserNotFound = errors.New("Account no longer exists")

	ErrGoogleLoginDisabled   = errors.New("Google sign-in is not enabled")
	ErrOAuthStateMismatch    = errors.New("Sign-in request expired, please start again")
	ErrGoogleSignInFailed    = errors.New("Google sign-in failed")
	ErrGoogleEmailUnverified = errors.New("Google account email is not verified")
	// ErrAccountNotProvisioned is returned for a Google account whose email
	// has no login; accounts are only created by operators.
	ErrAccountNotProvisioned = errors.New("No account is registered for this Google email")
	ErrGoogleAccountMismatch = errors.New("This account is linked to a different Google account")
)
