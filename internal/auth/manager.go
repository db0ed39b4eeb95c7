// Package auth owns the client's authentication state. All transitions go
// through the Manager; nothing else mutates the state or the stored tokens
// except the transport's refresh cycle, which reports back through the
// Manager's hooks.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/3ricLu/Symptomfy-sub001/internal/api"
	"github.com/3ricLu/Symptomfy-sub001/internal/session"
	"github.com/3ricLu/Symptomfy-sub001/internal/token"
	apperrors "github.com/3ricLu/Symptomfy-sub001/pkg/errors"
	"github.com/3ricLu/Symptomfy-sub001/pkg/validator"
)

// User-facing messages for classified auth failures.
const (
	msgWrongCredentials   = "Wrong email or password"
	msgEmailTaken         = "Email already registered"
	msgInvalidRegistration = "Invalid registration data, please check your input"
	msgSessionExpired     = "Session expired, please log in again"
	msgGenericFailure     = "Something went wrong, please try again"
)

// State is a snapshot of the auth container.
type State struct {
	Authenticated bool
	Loading       bool
	ErrorMessage  string
}

// API is the slice of the auth endpoints the Manager drives.
type API interface {
	Login(ctx context.Context, email, password string) (api.TokenPair, error)
	Register(ctx context.Context, email, password, name string) (api.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (api.TokenPair, error)
}

// Manager is the auth state container. It is an explicitly constructed,
// injected object; there is no package-level instance.
type Manager struct {
	mu        sync.Mutex
	state     State
	sessions  *session.Store
	inspector *token.Inspector
	api       API
	logger    *slog.Logger
	onChange  func(State)
}

// Option configures a Manager.
type Option func(*Manager)

// WithOnChange registers a callback invoked after every state transition,
// outside the Manager's lock.
func WithOnChange(fn func(State)) Option {
	return func(m *Manager) { m.onChange = fn }
}

// NewManager creates an auth manager over the given session store.
func NewManager(sessions *session.Store, inspector *token.Inspector, authAPI API, logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		sessions:  sessions,
		inspector: inspector,
		api:       authAPI,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns a snapshot of the current auth state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// MarkLoggedIn is the synchronous login transition: the transport calls it
// after a successful mid-request token refresh.
func (m *Manager) MarkLoggedIn() {
	m.transition(func(st *State) {
		st.Authenticated = true
		st.Loading = false
	})
}

// Logout clears the session tokens and marks the state unauthenticated.
func (m *Manager) Logout() {
	m.sessions.Clear()
	m.transition(func(st *State) {
		st.Authenticated = false
		st.Loading = false
	})
	m.logger.Info("logged out, session cleared")
}

// ClearError resets the error message.
func (m *Manager) ClearError() {
	m.transition(func(st *State) {
		st.ErrorMessage = ""
	})
}

// CheckAuth recomputes Authenticated from the stored access token: true iff
// a syntactically valid, non-expired token is present.
func (m *Manager) CheckAuth() {
	tok, _ := m.sessions.AccessToken()
	valid := m.inspector.Valid(tok)
	m.transition(func(st *State) {
		st.Authenticated = valid
	})
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registerInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Name     string `validate:"required,min=1,max=100"`
}

// Login runs the asynchronous login operation: pending, then fulfilled (tokens
// stored, authenticated) or rejected (classified error message).
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if err := validator.Validate(loginInput{Email: email, Password: password}); err != nil {
		m.reject(err.Error())
		return err
	}

	m.pending()

	pair, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.reject(classifyLoginError(err))
		return err
	}

	m.sessions.SetTokens(pair.AccessToken, pair.RefreshToken)
	m.fulfill()
	m.logger.InfoContext(ctx, "login succeeded")
	return nil
}

// Register mirrors Login with its own error classification.
func (m *Manager) Register(ctx context.Context, email, password, name string) error {
	if err := validator.Validate(registerInput{Email: email, Password: password, Name: name}); err != nil {
		m.reject(err.Error())
		return err
	}

	m.pending()

	pair, err := m.api.Register(ctx, email, password, name)
	if err != nil {
		m.reject(classifyRegisterError(err))
		return err
	}

	m.sessions.SetTokens(pair.AccessToken, pair.RefreshToken)
	m.fulfill()
	m.logger.InfoContext(ctx, "registration succeeded")
	return nil
}

// Refresh mints a new access token from the stored refresh token. It fails
// fast locally, without a network round trip, when the refresh token is
// absent, malformed, or expired.
func (m *Manager) Refresh(ctx context.Context) error {
	refreshToken, ok := m.sessions.RefreshToken()
	if !ok || !m.inspector.Valid(refreshToken) {
		m.reject(msgSessionExpired)
		return apperrors.Unauthorized("refresh token missing or expired")
	}

	m.pending()

	pair, err := m.api.Refresh(ctx, refreshToken)
	if err != nil {
		m.reject(msgSessionExpired)
		return err
	}

	m.sessions.SetAccessToken(pair.AccessToken)
	if pair.RefreshToken != "" {
		m.sessions.SetRefreshToken(pair.RefreshToken)
	}
	m.fulfill()
	m.logger.InfoContext(ctx, "token refresh succeeded")
	return nil
}

func (m *Manager) pending() {
	m.transition(func(st *State) {
		st.Loading = true
		st.ErrorMessage = ""
	})
}

func (m *Manager) fulfill() {
	m.transition(func(st *State) {
		st.Authenticated = true
		st.Loading = false
	})
}

func (m *Manager) reject(message string) {
	m.transition(func(st *State) {
		st.Authenticated = false
		st.Loading = false
		st.ErrorMessage = message
	})
}

func (m *Manager) transition(apply func(*State)) {
	m.mu.Lock()
	apply(&m.state)
	snapshot := m.state
	m.mu.Unlock()

	if m.onChange != nil {
		m.onChange(snapshot)
	}
}

// classifyLoginError maps a login failure to its user-facing message:
// 401 means wrong credentials, a server-supplied message is passed through,
// anything else gets the generic fallback.
func classifyLoginError(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status == http.StatusUnauthorized {
			return msgWrongCredentials
		}
		if appErr.Message != "" {
			return appErr.Message
		}
	}
	return msgGenericFailure
}

// classifyRegisterError maps a registration failure: 409 means the email is
// taken, 400 means the submitted data was invalid, a server-supplied message
// is passed through, anything else gets the generic fallback.
func classifyRegisterError(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Status {
		case http.StatusConflict:
			return msgEmailTaken
		case http.StatusBadRequest:
			return msgInvalidRegistration
		}
		if appErr.Message != "" {
			return appErr.Message
		}
	}
	return msgGenericFailure
}
