package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func fakeGoogle(t *testing.T) (*httptest.Server, *GoogleServiceImpl) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.PostForm.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "google-access",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer google-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(GoogleInformation{GoogleID: "1098", Email: "siti@rsi.co.id", VerifiedEmail: true})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	svc := newGoogleService(GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "https://mutabaah.rsi.co.id/auth/google/callback",
		Scopes:       []string{"openid", "email"},
	}, oauth2.Endpoint{
		AuthURL:   srv.URL + "/auth",
		TokenURL:  srv.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}, srv.URL+"/userinfo")
	return srv, svc
}

func TestVerifyUser(t *testing.T) {
	_, svc := fakeGoogle(t)

	info, err := svc.VerifyUser(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, GoogleInformation{GoogleID: "1098", Email: "siti@rsi.co.id", VerifiedEmail: true}, info)

	_, err = svc.VerifyUser(context.Background(), "stale-code")
	assert.ErrorContains(t, err, "exchange google code")
}

func TestRedirectURLCarriesState(t *testing.T) {
	_, svc := fakeGoogle(t)

	state, err := svc.GenerateState()
	require.NoError(t, err)
	other, err := svc.GenerateState()
	require.NoError(t, err)
	assert.NotEqual(t, state, other)

	u, err := url.Parse(svc.RedirectURL(state))
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, state, q.Get("state"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "openid email", q.Get("scope"))
	assert.Equal(t, "https://mutabaah.rsi.co.id/auth/google/callback", q.Get("redirect_uri"))
}
