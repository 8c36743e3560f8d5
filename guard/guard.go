// Package guard decides, for each requested view, whether to render it,
// hold while the session is still bootstrapping, or redirect. Decisions are
// a pure function of the session snapshot and the route's declared
// requirement, re-evaluated on every navigation and session change; the
// guard has no side effects of its own.
package guard

import (
	"github.com/novexa/sessionkit"
)

// Requirement is a view's declared access class.
type Requirement uint8

const (
	// Public views (login, register, forgot-password) are for the
	// unauthenticated; a live session is bounced to the landing page.
	Public Requirement = iota
	// Protected views require a live session.
	Protected
	// ProtectedAdmin views additionally require the admin flag. Non-admins
	// are silently bounced to the landing page, not shown an error.
	ProtectedAdmin
)

// Action is the guard's verdict.
type Action uint8

const (
	// Render shows the requested view.
	Render Action = iota
	// Hold shows a neutral loading indicator; no redirect decision is made
	// while the session is still bootstrapping.
	Hold
	// RedirectLogin sends the navigation to the login view.
	RedirectLogin
	// RedirectHome sends the navigation to the authenticated landing page.
	RedirectHome
	// NotFound shows the generic not-found view with a link back to the
	// landing page; session state plays no part.
	NotFound
)

// Decide applies the protection table to one navigation.
func Decide(snap sessionkit.Snapshot, req Requirement) Action {
	if snap.Loading {
		return Hold
	}

	switch req {
	case Public:
		if snap.Authenticated {
			return RedirectHome
		}
	case Protected, ProtectedAdmin:
		if !snap.Authenticated {
			return RedirectLogin
		}
		if req == ProtectedAdmin && (snap.User == nil || !snap.User.Admin) {
			return RedirectHome
		}
	}
	return Render
}

// Routes maps view paths to their requirements. Paths not in the table
// resolve to the not-found view.
type Routes struct {
	table map[string]Requirement
	login string
	home  string
}

// NewRoutes creates a route table with the configured redirect targets. The
// login and home paths register themselves (Public and Protected).
func NewRoutes(cfg sessionkit.RouteConfig) *Routes {
	r := &Routes{
		table: make(map[string]Requirement),
		login: cfg.LoginPath,
		home:  cfg.HomePath,
	}
	r.Add(cfg.LoginPath, Public)
	r.Add(cfg.HomePath, Protected)
	return r
}

// Add registers a view path.
func (r *Routes) Add(path string, req Requirement) *Routes {
	r.table[path] = req
	return r
}

// LoginPath returns the redirect target for RedirectLogin.
func (r *Routes) LoginPath() string { return r.login }

// HomePath returns the redirect target for RedirectHome.
func (r *Routes) HomePath() string { return r.home }

// Resolve looks a path up. ok is false for unknown routes, which always
// yield the not-found view regardless of session state.
func (r *Routes) Resolve(path string) (Requirement, bool) {
	req, ok := r.table[path]
	return req, ok
}

// DecideRoute combines table lookup and the protection table for one
// navigation, including the not-found rule.
func (r *Routes) DecideRoute(snap sessionkit.Snapshot, path string) Action {
	req, ok := r.Resolve(path)
	if !ok {
		return NotFound
	}
	return Decide(snap, req)
}
