package middleware

import (
	"net/http"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/user"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/handler/http/response"
)

// RequireEmployee rejects accounts that are not linked to an employee.
func RequireEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := auth.EmployeeFromContext(r.Context()); err != nil {
			response.HandleError(w, user.ErrEmployeeProfileRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePermission admits callers whose role grants permission.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := auth.ActorFromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			if !user.HasPermission(actor.Role, permission) {
				response.HandleError(w, user.ErrInsufficientPermissions)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
