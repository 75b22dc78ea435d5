package user

import "context"

// UserRepository stores login accounts. Lookups that match nothing return
// ErrUserNotFound; Create returns ErrUserEmailExists for a taken email.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	// LinkGoogleAccount records googleID on the account. It returns
	// ErrGoogleAccountLinked when that Google account already belongs to
	// another user.
	LinkGoogleAccount(ctx context.Context, userID, googleID string) (User, error)
}
