package auth

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/user"
)

// Actor is the authenticated caller as described by the access token.
type Actor struct {
	UserID     string
	Email      string
	EmployeeID string
	Role       user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}

// CanActFor reports whether the caller may act on employeeID's own data.
func (a Actor) CanActFor(employeeID string) bool {
	return a.IsAdmin() || (a.EmployeeID != "" && a.EmployeeID == employeeID)
}

// ActorFromContext extracts the caller from the JWT claims in ctx.
func ActorFromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Actor{}, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)
	employeeID, _ := claims["employee_id"].(string)

	return Actor{
		UserID:     userID,
		Email:      email,
		EmployeeID: employeeID,
		Role:       user.Role(role),
	}, nil
}

// EmployeeFromContext returns the caller's employee id, failing for
// accounts without an employee profile.
func EmployeeFromContext(ctx context.Context) (string, error) {
	actor, err := ActorFromContext(ctx)
	if err != nil {
		return "", err
	}
	if actor.EmployeeID == "" {
		return "", user.ErrEmployeeProfileRequired
	}
	return actor.EmployeeID, nil
}

// ContextWithActor attaches actor as verified token claims, for callers
// that act without an HTTP request such as the admin CLI.
func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	token := jwt.New()
	_ = token.Set("user_id", actor.UserID)
	_ = token.Set("email", actor.Email)
	_ = token.Set("role", string(actor.Role))
	if actor.EmployeeID != "" {
		_ = token.Set("employee_id", actor.EmployeeID)
	}
	return jwtauth.NewContext(ctx, token, nil)
}
