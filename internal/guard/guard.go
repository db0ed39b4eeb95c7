// Package guard decides whether a navigation is allowed, given the current
// auth state and role. Guards are pure functions; the caller performs the
// actual navigation.
package guard

import (
	"strings"

	"github.com/3ricLu/Symptomfy-sub001/internal/auth"
	"github.com/3ricLu/Symptomfy-sub001/internal/profile"
)

// Well-known client routes.
const (
	RouteLogin   = "/login"
	RouteHome    = "/"
	RoutePatient = "/patient"
	RouteDoctor  = "/doctor"
	RouteAdmin   = "/admin"
	RouteProfile = "/profile"
)

// Decision is the outcome of a guard check. When Allow is false, RedirectTo
// names the route the caller should navigate to instead.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Protected allows navigation iff the session is authenticated; otherwise it
// redirects to the login screen.
func Protected(st auth.State) Decision {
	if st.Authenticated {
		return Decision{Allow: true}
	}
	return Decision{RedirectTo: RouteLogin}
}

// RoleBased allows navigation iff the session is authenticated and its role
// is a member of allowedRoles (compared case-insensitively). Otherwise it
// redirects to redirectTo, defaulting to the home route.
func RoleBased(st auth.State, role profile.Role, allowedRoles []string, redirectTo string) Decision {
	if redirectTo == "" {
		redirectTo = RouteHome
	}
	if !st.Authenticated {
		return Decision{RedirectTo: redirectTo}
	}
	for _, allowed := range allowedRoles {
		if strings.EqualFold(allowed, role.String()) && role != profile.RoleNone {
			return Decision{Allow: true}
		}
	}
	return Decision{RedirectTo: redirectTo}
}

// RoleRedirect returns the landing route for the session: the role dashboard
// when a role is set, the profile screen for an authenticated session with no
// role, and the login screen otherwise.
func RoleRedirect(st auth.State, role profile.Role) string {
	if !st.Authenticated {
		return RouteLogin
	}
	switch role {
	case profile.RolePatient:
		return RoutePatient
	case profile.RoleDoctor:
		return RouteDoctor
	case profile.RoleAdmin:
		return RouteAdmin
	default:
		return RouteProfile
	}
}
