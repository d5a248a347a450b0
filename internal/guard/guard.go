// Package guard decides whether a session may view a protected route.
package guard

import (
	"github.com/jwalitptl/patio-health/internal/model"
	"github.com/jwalitptl/patio-health/internal/service/session"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectDashboard
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectDashboard:
		return "redirect_dashboard"
	default:
		return "unknown"
	}
}

// Location is the redirect target, empty for Allow
func (d Decision) Location() string {
	switch d {
	case RedirectLogin:
		return LoginPath
	case RedirectDashboard:
		return DashboardPath
	default:
		return ""
	}
}

// Decide applies the guard to s. An empty allowed set admits any authenticated role.
func Decide(s session.State, allowed []model.Role) Decision {
	user := session.UserOf(s)
	if user == nil {
		return RedirectLogin
	}
	if len(allowed) == 0 {
		return Allow
	}
	for _, r := range allowed {
		if r == user.Role {
			return Allow
		}
	}
	return RedirectDashboard
}
