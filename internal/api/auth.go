// Package api contains the typed clients for the Symptomfy REST endpoints.
// Auth endpoints go through a plain HTTP client; everything else goes
// through the intercepting transport so the bearer token is attached and
// refreshed transparently.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/3ricLu/Symptomfy-sub001/internal/transport"
)

// Doer executes authenticated HTTP requests. Satisfied by transport.Client
// and transport.BreakerClient.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// AuthAPI calls the login, registration, and refresh endpoints. These are
// deliberately outside the intercepted client: a 401 from login must never
// trigger a refresh cycle.
type AuthAPI struct {
	baseURL    string
	httpClient *http.Client
}

// NewAuthAPI creates a client for the auth endpoints.
func NewAuthAPI(baseURL string, timeout time.Duration) *AuthAPI {
	return &AuthAPI{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Login exchanges credentials for a token pair via POST /api/auth.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (TokenPair, error) {
	return a.postForTokens(ctx, "/api/auth", loginRequest{Email: email, Password: password})
}

// Register creates an account and returns its first token pair via
// POST /api/user.
func (a *AuthAPI) Register(ctx context.Context, email, password, name string) (TokenPair, error) {
	return a.postForTokens(ctx, "/api/user", registerRequest{Email: email, Password: password, Name: name})
}

// Refresh exchanges a refresh token for a new pair via POST /api/user/refresh.
func (a *AuthAPI) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	return a.postForTokens(ctx, "/api/user/refresh", refreshRequest{RefreshToken: refreshToken})
}

// RefreshTokens adapts Refresh to the transport.RefreshFunc signature.
func (a *AuthAPI) RefreshTokens(ctx context.Context, refreshToken string) (string, string, error) {
	pair, err := a.Refresh(ctx, refreshToken)
	if err != nil {
		return "", "", err
	}
	return pair.AccessToken, pair.RefreshToken, nil
}

func (a *AuthAPI) postForTokens(ctx context.Context, path string, payload any) (TokenPair, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return TokenPair{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return TokenPair{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return TokenPair{}, fmt.Errorf("POST %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return TokenPair{}, transport.ParseResponseError(resp, path)
	}

	pair, err := ParseTokenPair(resp.Body)
	if err != nil {
		return TokenPair{}, fmt.Errorf("POST %s: %w", path, err)
	}
	return pair, nil
}
