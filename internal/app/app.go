// Package app wires the client's dependency graph: session store, auth
// manager, intercepting transport, and the typed API clients.
package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/3ricLu/Symptomfy-sub001/internal/api"
	"github.com/3ricLu/Symptomfy-sub001/internal/auth"
	"github.com/3ricLu/Symptomfy-sub001/internal/config"
	"github.com/3ricLu/Symptomfy-sub001/internal/guard"
	"github.com/3ricLu/Symptomfy-sub001/internal/profile"
	"github.com/3ricLu/Symptomfy-sub001/internal/session"
	"github.com/3ricLu/Symptomfy-sub001/internal/token"
	"github.com/3ricLu/Symptomfy-sub001/internal/transport"
)

// App is one client session: the equivalent of a single browser tab.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	Sessions     *session.Store
	Auth         *auth.Manager
	Client       *transport.Client
	Profiles     *api.ProfileAPI
	Diagnosis    *api.DiagnosisAPI
	Appointments *api.AppointmentAPI

	mu    sync.Mutex
	route string
}

// New constructs the full dependency graph. Nothing here is a package-level
// singleton; a second App is a second independent session.
func New(cfg *config.Config, logger *slog.Logger) *App {
	a := &App{
		cfg:    cfg,
		logger: logger,
		route:  guard.RouteLogin,
	}

	a.Sessions = session.NewStore()
	inspector := token.NewInspector()
	authAPI := api.NewAuthAPI(cfg.APIURL, cfg.HTTPTimeout)

	a.Auth = auth.NewManager(a.Sessions, inspector, authAPI, logger)

	a.Client = transport.New(
		transport.Config{
			Timeout:         cfg.HTTPTimeout,
			MaxRetries:      cfg.HTTPMaxRetries,
			RetryWaitMin:    cfg.HTTPRetryWaitMin,
			RetryWaitMax:    cfg.HTTPRetryWaitMax,
			MaxConnsPerHost: 100,
		},
		a.Sessions,
		transport.WithRefresh(authAPI.RefreshTokens),
		transport.WithOnAuthRefreshed(a.Auth.MarkLoggedIn),
		transport.WithOnSessionExpired(a.sessionExpired),
		transport.WithLogger(logger),
	)

	breaker := transport.NewBreakerClient(
		a.Client,
		transport.DefaultBreakerConfig("diagnosis"),
		logger,
	)

	a.Profiles = api.NewProfileAPI(cfg.APIURL, a.Client)
	a.Diagnosis = api.NewDiagnosisAPI(cfg.APIURL, breaker)
	a.Appointments = api.NewAppointmentAPI(cfg.APIURL, a.Client)

	return a
}

// Route returns the current client route.
func (a *App) Route() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

// Navigate moves the client to the given route.
func (a *App) Navigate(route string) {
	a.mu.Lock()
	a.route = route
	a.mu.Unlock()
	a.logger.Debug("navigated", slog.String("route", route))
}

// Landing recomputes the auth state from the stored token, resolves the
// session's role, and navigates to the landing route for it.
func (a *App) Landing(ctx context.Context) (string, error) {
	a.Auth.CheckAuth()
	st := a.Auth.State()

	role := profile.RoleNone
	if st.Authenticated {
		prof, err := a.Profiles.Resolve(ctx)
		if err != nil {
			return "", err
		}
		role = prof.Role
	}

	route := guard.RoleRedirect(st, role)
	a.Navigate(route)
	return route, nil
}

// ActiveProfile resolves the session's profile through a Protected guard.
func (a *App) ActiveProfile(ctx context.Context) (*profile.Profile, error) {
	if d := guard.Protected(a.Auth.State()); !d.Allow {
		a.Navigate(d.RedirectTo)
		return nil, transport.ErrSessionExpired
	}
	return a.Profiles.Resolve(ctx)
}

// sessionExpired is the transport's terminal-failure hook: the session is
// unrecoverable, so force logout and send the user to the login screen.
func (a *App) sessionExpired() {
	a.Auth.Logout()
	a.Navigate(guard.RouteLogin)
}
