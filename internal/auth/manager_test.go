package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3ricLu/Symptomfy-sub001/internal/api"
	"github.com/3ricLu/Symptomfy-sub001/internal/session"
	"github.com/3ricLu/Symptomfy-sub001/internal/token"
	apperrors "github.com/3ricLu/Symptomfy-sub001/pkg/errors"
)

// fakeAPI scripts the auth endpoints for one test.
type fakeAPI struct {
	loginPair    api.TokenPair
	loginErr     error
	registerPair api.TokenPair
	registerErr  error
	refreshPair  api.TokenPair
	refreshErr   error

	loginCalls   int
	refreshCalls int
	lastRefresh  string
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (api.TokenPair, error) {
	f.loginCalls++
	return f.loginPair, f.loginErr
}

func (f *fakeAPI) Register(ctx context.Context, email, password, name string) (api.TokenPair, error) {
	return f.registerPair, f.registerErr
}

func (f *fakeAPI) Refresh(ctx context.Context, refreshToken string) (api.TokenPair, error) {
	f.refreshCalls++
	f.lastRefresh = refreshToken
	return f.refreshPair, f.refreshErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newManager(t *testing.T, fake *fakeAPI, opts ...Option) (*Manager, *session.Store) {
	t.Helper()
	store := session.NewStore()
	m := NewManager(store, token.NewInspector(), fake, testLogger(), opts...)
	return m, store
}

func validJWT(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(expiresIn).Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestLogin_Success(t *testing.T) {
	fake := &fakeAPI{loginPair: api.TokenPair{AccessToken: "a1", RefreshToken: "r1"}}
	m, store := newManager(t, fake)

	err := m.Login(context.Background(), "user@example.com", "password123")
	require.NoError(t, err)

	st := m.State()
	assert.True(t, st.Authenticated)
	assert.False(t, st.Loading)
	assert.Empty(t, st.ErrorMessage)

	access, _ := store.AccessToken()
	refresh, _ := store.RefreshToken()
	assert.Equal(t, "a1", access)
	assert.Equal(t, "r1", refresh)
}

func TestLogin_WrongCredentials(t *testing.T) {
	fake := &fakeAPI{loginErr: &apperrors.AppError{
		Code: "UNAUTHORIZED", Message: "invalid credentials", Status: http.StatusUnauthorized,
	}}
	m, store := newManager(t, fake)

	err := m.Login(context.Background(), "user@example.com", "wrong-pass")
	require.Error(t, err)

	st := m.State()
	assert.False(t, st.Authenticated)
	assert.Equal(t, "Wrong email or password", st.ErrorMessage)

	_, ok := store.AccessToken()
	assert.False(t, ok, "no tokens stored on failure")
}

func TestLogin_ServerMessagePassedThrough(t *testing.T) {
	fake := &fakeAPI{loginErr: &apperrors.AppError{
		Message: "Account locked", Status: http.StatusForbidden,
	}}
	m, _ := newManager(t, fake)

	_ = m.Login(context.Background(), "user@example.com", "password123")
	assert.Equal(t, "Account locked", m.State().ErrorMessage)
}

func TestLogin_NetworkErrorGetsGenericMessage(t *testing.T) {
	fake := &fakeAPI{loginErr: errors.New("connection refused")}
	m, _ := newManager(t, fake)

	_ = m.Login(context.Background(), "user@example.com", "password123")
	assert.Equal(t, "Something went wrong, please try again", m.State().ErrorMessage)
}

func TestLogin_InvalidInputSkipsAPI(t *testing.T) {
	fake := &fakeAPI{}
	m, _ := newManager(t, fake)

	err := m.Login(context.Background(), "not-an-email", "password123")
	require.Error(t, err)
	assert.Zero(t, fake.loginCalls, "validation failure never reaches the network")
	assert.NotEmpty(t, m.State().ErrorMessage)
}

func TestRegister_Success(t *testing.T) {
	fake := &fakeAPI{registerPair: api.TokenPair{AccessToken: "a1", RefreshToken: "r1"}}
	m, store := newManager(t, fake)

	err := m.Register(context.Background(), "new@example.com", "password123", "New User")
	require.NoError(t, err)
	assert.True(t, m.State().Authenticated)

	access, _ := store.AccessToken()
	assert.Equal(t, "a1", access)
}

func TestRegister_EmailTaken(t *testing.T) {
	fake := &fakeAPI{registerErr: &apperrors.AppError{Status: http.StatusConflict}}
	m, _ := newManager(t, fake)

	_ = m.Register(context.Background(), "dup@example.com", "password123", "Dup")
	assert.Equal(t, "Email already registered", m.State().ErrorMessage)
}

func TestRegister_InvalidData(t *testing.T) {
	fake := &fakeAPI{registerErr: &apperrors.AppError{Status: http.StatusBadRequest}}
	m, _ := newManager(t, fake)

	_ = m.Register(context.Background(), "new@example.com", "password123", "New User")
	assert.Equal(t, "Invalid registration data, please check your input", m.State().ErrorMessage)
}

func TestRegister_ShortPasswordRejectedLocally(t *testing.T) {
	fake := &fakeAPI{}
	m, _ := newManager(t, fake)

	err := m.Register(context.Background(), "new@example.com", "short", "New User")
	require.Error(t, err)
	assert.False(t, m.State().Authenticated)
}

func TestRefresh_Success(t *testing.T) {
	fake := &fakeAPI{refreshPair: api.TokenPair{AccessToken: "a2", RefreshToken: "r2"}}
	m, store := newManager(t, fake)

	rt := validJWT(t, time.Hour)
	store.SetTokens("old-access", rt)

	err := m.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rt, fake.lastRefresh)
	assert.True(t, m.State().Authenticated)

	access, _ := store.AccessToken()
	refresh, _ := store.RefreshToken()
	assert.Equal(t, "a2", access)
	assert.Equal(t, "r2", refresh)
}

func TestRefresh_KeepsRefreshTokenWhenNotRotated(t *testing.T) {
	fake := &fakeAPI{refreshPair: api.TokenPair{AccessToken: "a2"}}
	m, store := newManager(t, fake)

	rt := validJWT(t, time.Hour)
	store.SetTokens("old-access", rt)

	require.NoError(t, m.Refresh(context.Background()))

	refresh, _ := store.RefreshToken()
	assert.Equal(t, rt, refresh)
}

func TestRefresh_MissingTokenFailsFast(t *testing.T) {
	fake := &fakeAPI{}
	m, _ := newManager(t, fake)

	err := m.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Zero(t, fake.refreshCalls, "no network call without a usable token")
	assert.Equal(t, "Session expired, please log in again", m.State().ErrorMessage)
}

func TestRefresh_ExpiredTokenFailsFast(t *testing.T) {
	fake := &fakeAPI{}
	m, store := newManager(t, fake)
	store.SetRefreshToken(validJWT(t, -time.Hour))

	err := m.Refresh(context.Background())
	require.Error(t, err)
	assert.Zero(t, fake.refreshCalls)
}

func TestRefresh_APIFailure(t *testing.T) {
	fake := &fakeAPI{refreshErr: errors.New("boom")}
	m, store := newManager(t, fake)
	store.SetRefreshToken(validJWT(t, time.Hour))

	err := m.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, fake.refreshCalls)
	assert.False(t, m.State().Authenticated)
	assert.Equal(t, "Session expired, please log in again", m.State().ErrorMessage)
}

func TestLogout_ClearsTokensAndState(t *testing.T) {
	fake := &fakeAPI{loginPair: api.TokenPair{AccessToken: "a1", RefreshToken: "r1"}}
	m, store := newManager(t, fake)
	require.NoError(t, m.Login(context.Background(), "user@example.com", "password123"))

	m.Logout()

	assert.False(t, m.State().Authenticated)
	_, ok := store.AccessToken()
	assert.False(t, ok)
	_, ok = store.RefreshToken()
	assert.False(t, ok)
}

func TestCheckAuth_ValidStoredToken(t *testing.T) {
	m, store := newManager(t, &fakeAPI{})
	store.SetAccessToken(validJWT(t, time.Hour))

	m.CheckAuth()
	assert.True(t, m.State().Authenticated)
}

func TestCheckAuth_ExpiredStoredToken(t *testing.T) {
	m, store := newManager(t, &fakeAPI{})
	store.SetAccessToken(validJWT(t, -time.Hour))

	m.CheckAuth()
	assert.False(t, m.State().Authenticated)
}

func TestCheckAuth_NoToken(t *testing.T) {
	m, _ := newManager(t, &fakeAPI{})
	m.CheckAuth()
	assert.False(t, m.State().Authenticated)
}

func TestClearError(t *testing.T) {
	fake := &fakeAPI{loginErr: errors.New("boom")}
	m, _ := newManager(t, fake)
	_ = m.Login(context.Background(), "user@example.com", "password123")
	require.NotEmpty(t, m.State().ErrorMessage)

	m.ClearError()
	assert.Empty(t, m.State().ErrorMessage)
}

func TestMarkLoggedIn(t *testing.T) {
	m, _ := newManager(t, &fakeAPI{})
	m.MarkLoggedIn()
	st := m.State()
	assert.True(t, st.Authenticated)
	assert.False(t, st.Loading)
}

func TestWithOnChange_ObservesTransitions(t *testing.T) {
	var states []State
	fake := &fakeAPI{loginPair: api.TokenPair{AccessToken: "a1", RefreshToken: "r1"}}
	m, _ := newManager(t, fake, WithOnChange(func(st State) {
		states = append(states, st)
	}))

	require.NoError(t, m.Login(context.Background(), "user@example.com", "password123"))

	// Pending then fulfilled.
	require.Len(t, states, 2)
	assert.True(t, states[0].Loading)
	assert.False(t, states[0].Authenticated)
	assert.True(t, states[1].Authenticated)
	assert.False(t, states[1].Loading)
}
