package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/handler/http/response"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests without a verified access token. Refresh
// and SSE tokens are signed with the same key and are refused here.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != jwt.TypeAccess {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
