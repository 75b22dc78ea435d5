package auth

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithClaims(t *testing.T, claims map[string]interface{}) context.Context {
	t.Helper()
	token := jwt.New()
	for k, v := range claims {
		require.NoError(t, token.Set(k, v))
	}
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestActorFromContext(t *testing.T) {
	ctx := contextWithClaims(t, map[string]interface{}{
		"user_id":     "u-1",
		"email":       "perawat@rsi.co.id",
		"employee_id": "e-1",
		"role":        "employee",
	})

	actor, err := ActorFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "e-1", actor.EmployeeID)
	assert.Equal(t, user.RoleEmployee, actor.Role)
	assert.True(t, actor.CanActFor("e-1"))
	assert.False(t, actor.CanActFor("e-2"))
	assert.False(t, actor.IsAdmin())
}

func TestActorFromContextAdmin(t *testing.T) {
	ctx := contextWithClaims(t, map[string]interface{}{"user_id": "u-9", "role": "admin"})

	actor, err := ActorFromContext(ctx)
	require.NoError(t, err)
	assert.True(t, actor.CanActFor("anyone"))

	_, err = EmployeeFromContext(ctx)
	assert.ErrorIs(t, err, user.ErrEmployeeProfileRequired)
}

func TestActorFromContextMissingToken(t *testing.T) {
	_, err := ActorFromContext(context.Background())
	assert.Error(t, err)

	ctx := contextWithClaims(t, map[string]interface{}{"role": "admin"})
	_, err = ActorFromContext(ctx)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLoginRequestValidate(t *testing.T) {
	req := LoginRequest{Email: "bukan-email", Password: "123"}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "password")

	req = LoginRequest{Email: "perawat@rsi.co.id", Password: "rahasia123"}
	assert.NoError(t, req.Validate())
}

func TestContextWithActor(t *testing.T) {
	ctx := ContextWithActor(context.Background(), Actor{UserID: "u-1", EmployeeID: "e-1", Role: user.RoleEmployee})

	actor, err := ActorFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "e-1", actor.EmployeeID)
	assert.False(t, actor.IsAdmin())

	admin := ContextWithActor(context.Background(), Actor{UserID: "cli", Role: user.RoleAdmin})
	actor, err = ActorFromContext(admin)
	require.NoError(t, err)
	assert.True(t, actor.IsAdmin())
	assert.Empty(t, actor.EmployeeID)
}
