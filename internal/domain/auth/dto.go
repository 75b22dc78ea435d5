package auth

import (
	"strings"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/user"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate normalizes the email to lower case before checking it.
func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	switch {
	case r.Email == "":
		errs.Add("email", "email is required")
	case len(r.Email) > 254 || !validator.IsValidEmail(r.Email):
		errs.Add("email", "email must be a valid address")
	}
	if msg := user.PasswordProblem(r.Password); msg != "" {
		errs.Add("password", msg)
	}
	return errs.Err()
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.RefreshToken) {
		errs.Add("refresh_token", "refresh_token is required")
	}
	return errs.Err()
}

// GoogleLoginRequest carries what Google's consent page handed back to the
// frontend callback.
type GoogleLoginRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

func (r *GoogleLoginRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Code) {
		errs.Add("code", "code is required")
	}
	if validator.IsEmpty(r.State) {
		errs.Add("state", "state is required")
	}
	return errs.Err()
}

// GoogleRedirect is where the browser goes to start Google sign-in. State
// must come back unchanged with the authorization code.
type GoogleRedirect struct {
	URL   string
	State string
}

// SessionTrackingRequest is stored alongside each refresh token.
type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}
