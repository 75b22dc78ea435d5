package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/handler/http/response"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/jwt"
)

const (
	refreshTokenCookieName = "refresh_token"
	oauthStateCookieName   = "oauth_state"
	oauthStateCookiePath   = "/api/v1/auth/google"
	oauthStateTTL          = 5 * time.Minute
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	GoogleRedirect(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	// Call service
	session := auth.SessionTrackingRequest{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
	tokenResponse, err := a.authService.Login(r.Context(), loginReq, session)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn))
	response.Created(w, "User logged in successfully", tokenResponse)
}

// Logout implements AuthHandler. The refresh token is read from the cookie
// and, failing that, from the JSON body.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	refreshToken, ok := readRefreshToken(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	if err := a.authService.Logout(r.Context(), refreshToken); err != nil {
		slog.Error("Logout service error", "error", err)
		response.HandleError(w, err)
		return
	}

	cleared := a.jwtService.RefreshTokenCookie("", 0)
	cleared.Expires = time.Unix(0, 0)
	cleared.MaxAge = -1
	http.SetCookie(w, cleared)
	response.SuccessWithMessage(w, "User logged out successfully", nil)
}

// RefreshToken implements AuthHandler.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var refreshTokenReq auth.RefreshTokenRequest
	refreshTokenReq.RefreshToken, _ = readRefreshToken(r)

	// Validate DTO
	if err := refreshTokenReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokenResponse, err := a.authService.RefreshToken(r.Context(), refreshTokenReq)
	if err != nil {
		slog.Error("Refresh token service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Token refreshed successfully", tokenResponse)
}

// GoogleRedirect implements AuthHandler. The state travels back to
// LoginWithGoogle in a short-lived cookie.
func (a *AuthHandlerImpl) GoogleRedirect(w http.ResponseWriter, r *http.Request) {
	redirect, err := a.authService.GoogleRedirect()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, oauthStateCookie(r, redirect.State, oauthStateTTL))
	http.Redirect(w, r, redirect.URL, http.StatusTemporaryRedirect)
}

// LoginWithGoogle implements AuthHandler.
func (a *AuthHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	var req auth.GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Google login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	c, err := r.Cookie(oauthStateCookieName)
	if err != nil || c.Value == "" || c.Value != req.State {
		response.HandleError(w, auth.ErrOAuthStateMismatch)
		return
	}
	http.SetCookie(w, oauthStateCookie(r, "", -1))

	session := auth.SessionTrackingRequest{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
	tokenResponse, err := a.authService.LoginWithGoogle(r.Context(), req, session)
	if err != nil {
		slog.Error("Google login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn))
	response.Created(w, "User logged in successfully", tokenResponse)
}

// oauthStateCookie builds the state cookie; a negative ttl clears it.
func oauthStateCookie(r *http.Request, state string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Path:     oauthStateCookiePath,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		return c
	}
	c.MaxAge = int(ttl.Seconds())
	c.Expires = time.Now().Add(ttl)
	return c
}

func readRefreshToken(r *http.Request) (string, bool) {
	if c, err := r.Cookie(refreshTokenCookieName); err == nil && c.Value != "" {
		return c.Value, true
	}
	var body auth.RefreshTokenRequest
	if r.Body == nil || json.NewDecoder(r.Body).Decode(&body) != nil || body.RefreshToken == "" {
		return "", false
	}
	return body.RefreshToken, true
}
