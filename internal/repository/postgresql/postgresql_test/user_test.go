package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/user"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	employeeID := createEmployee(t, ctx, "2019-0042", nil)
	userRepo := postgresql.NewUserRepository(testDB)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	created, err := userRepo.Create(ctx, user.User{
		Email:        "siti@rs.example",
		PasswordHash: string(hash),
		Role:         user.RoleEmployee,
		EmployeeID:   &employeeID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byEmail, err := userRepo.GetByEmail(ctx, "siti@rs.example")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	require.NotNil(t, byEmail.EmployeeID)
	assert.Equal(t, employeeID, *byEmail.EmployeeID)

	byID, err := userRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, user.RoleEmployee, byID.Role)

	_, err = userRepo.Create(ctx, user.User{Email: "siti@rs.example", PasswordHash: string(hash), Role: user.RoleEmployee})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestUserRepository_NotFound(t *testing.T) {
	resetTables(t)
	userRepo := postgresql.NewUserRepository(testDB)

	_, err := userRepo.GetByEmail(context.Background(), "notfound@rs.example")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	err = userRepo.UpdatePassword(context.Background(), "0195f3a0-0000-7000-8000-000000000000", "x")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestRefreshTokenRepository_Revocation(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	account, err := postgresql.NewUserRepository(testDB).Create(ctx, user.User{
		Email:        "admin@rs.example",
		PasswordHash: "x",
		Role:         user.RoleAdmin,
	})
	require.NoError(t, err)

	tokens := postgresql.NewRefreshTokenRepository(testDB)
	session := auth.SessionTrackingRequest{IPAddress: "10.0.0.1"}
	require.NoError(t, tokens.Save(ctx, account.ID, "token-a", time.Now().Add(time.Hour), session))
	require.NoError(t, tokens.Save(ctx, account.ID, "token-b", time.Now().Add(time.Hour), session))
	require.NoError(t, tokens.Save(ctx, account.ID, "token-old", time.Now().Add(-time.Minute), session))

	revoked, err := tokens.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	for _, unknown := range []string{"token-old", "never-issued"} {
		revoked, err = tokens.IsRevoked(ctx, unknown)
		require.NoError(t, err)
		assert.True(t, revoked, unknown)
	}

	require.NoError(t, tokens.Revoke(ctx, "token-a"))
	revoked, _ = tokens.IsRevoked(ctx, "token-a")
	assert.True(t, revoked)

	require.NoError(t, tokens.RevokeAllForUser(ctx, account.ID))
	revoked, _ = tokens.IsRevoked(ctx, "token-b")
	assert.True(t, revoked)
}

func TestUserRepository_LinkGoogleAccount(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(testDB)

	siti, err := userRepo.Create(ctx, user.User{Email: "siti@rs.example", PasswordHash: "x", Role: user.RoleEmployee})
	require.NoError(t, err)
	assert.Nil(t, siti.GoogleID)
	other, err := userRepo.Create(ctx, user.User{Email: "admin@rs.example", PasswordHash: "x", Role: user.RoleAdmin})
	require.NoError(t, err)

	linked, err := userRepo.LinkGoogleAccount(ctx, siti.ID, "google-1098")
	require.NoError(t, err)
	require.NotNil(t, linked.GoogleID)
	assert.Equal(t, "google-1098", *linked.GoogleID)

	byEmail, err := userRepo.GetByEmail(ctx, "siti@rs.example")
	require.NoError(t, err)
	require.NotNil(t, byEmail.GoogleID)
	assert.Equal(t, "google-1098", *byEmail.GoogleID)

	_, err = userRepo.LinkGoogleAccount(ctx, other.ID, "google-1098")
	assert.ErrorIs(t, err, user.ErrGoogleAccountLinked)

	_, err = userRepo.LinkGoogleAccount(ctx, "0195f3a0-0000-7000-8000-000000000000", "google-2000")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
