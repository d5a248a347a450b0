// Package session implements the portal session: a tagged union of states, a pure
// transition function, and a Store that drives it against an identity provider and
// durable token storage.
package session

import "github.com/jwalitptl/patio-health/internal/model"

// State is one of Anonymous, Authenticating or Authenticated
type State interface {
	Name() string
	isState()
}

type Anonymous struct{}

// Authenticating is entered while a login or registration call is in flight
type Authenticating struct{}

// Authenticated binds exactly one user to a bearer token
type Authenticated struct {
	User  *model.User
	Token string
}

func (Anonymous) Name() string      { return "anonymous" }
func (Authenticating) Name() string { return "authenticating" }
func (Authenticated) Name() string  { return "authenticated" }

func (Anonymous) isState()      {}
func (Authenticating) isState() {}
func (Authenticated) isState()  {}

// IsAuthenticated reports whether s carries a user and token
func IsAuthenticated(s State) bool {
	_, ok := s.(Authenticated)
	return ok
}

// UserOf returns the bound user, or nil when s is not Authenticated
func UserOf(s State) *model.User {
	if a, ok := s.(Authenticated); ok {
		return a.User
	}
	return nil
}

// TokenOf returns the bound token, or "" when s is not Authenticated
func TokenOf(s State) string {
	if a, ok := s.(Authenticated); ok {
		return a.Token
	}
	return ""
}

// Snapshot flattens s into the serializable auth state
func Snapshot(s State) model.AuthState {
	a, ok := s.(Authenticated)
	if !ok {
		return model.AuthState{}
	}
	token := a.Token
	return model.AuthState{
		User:            a.User.Clone(),
		Token:           &token,
		IsAuthenticated: true,
	}
}

// Event drives a transition
type Event interface {
	Name() string
	isEvent()
}

type LoginStarted struct{}

type LoginSucceeded struct {
	User  *model.User
	Token string
}

type LoginFailed struct{}

type LoggedOut struct{}

// HydrationFailed is raised when a stored token no longer verifies
type HydrationFailed struct{}

func (LoginStarted) Name() string    { return "login_started" }
func (LoginSucceeded) Name() string  { return "login_succeeded" }
func (LoginFailed) Name() string     { return "login_failed" }
func (LoggedOut) Name() string       { return "logged_out" }
func (HydrationFailed) Name() string { return "hydration_failed" }

func (LoginStarted) isEvent()    {}
func (LoginSucceeded) isEvent()  {}
func (LoginFailed) isEvent()     {}
func (LoggedOut) isEvent()       {}
func (HydrationFailed) isEvent() {}

// Next returns the state that follows s on e. It has no side effects.
// LoginSucceeded without a user or token yields Anonymous so that no partial
// authenticated state can exist.
func Next(s State, e Event) State {
	switch ev := e.(type) {
	case LoginStarted:
		return Authenticating{}
	case LoginSucceeded:
		if ev.User == nil || ev.Token == "" {
			return Anonymous{}
		}
		return Authenticated{User: ev.User, Token: ev.Token}
	case LoginFailed, LoggedOut, HydrationFailed:
		return Anonymous{}
	default:
		return s
	}
}
