// Package pages serves the HTML pages and the navigation guard in front of them.
package pages

import "strings"

// RouteClass classifies a navigation target.
type RouteClass int

const (
	// Public routes are always reachable.
	Public RouteClass = iota
	// Protected routes require a session.
	Protected
	// AuthOnly routes are only meaningful without a session.
	AuthOnly
)

func (rc RouteClass) String() string {
	switch rc {
	case Protected:
		return "protected"
	case AuthOnly:
		return "auth-only"
	default:
		return "public"
	}
}

// RouteTable is the single source of truth for navigation rules.
type RouteTable struct {
	Protected []string
	AuthOnly  []string
	SignIn    string // where anonymous callers are sent
	Landing   string // where signed-in callers are sent
}

// DefaultRoutes returns the route table served by this application.
func DefaultRoutes() RouteTable {
	return RouteTable{
		Protected: []string{"/dashboard", "/profile"},
		AuthOnly:  []string{"/sign-in", "/sign-up"},
		SignIn:    "/sign-in",
		Landing:   "/dashboard",
	}
}

// Classify returns the class of path. A listed route also covers its sub-paths.
func (t RouteTable) Classify(path string) RouteClass {
	if matchAny(t.Protected, path) {
		return Protected
	}
	if matchAny(t.AuthOnly, path) {
		return AuthOnly
	}
	return Public
}

// Redirect returns the redirect target for a navigation to path, or "" to proceed.
func (t RouteTable) Redirect(path string, hasSession bool) string {
	switch t.Classify(path) {
	case Protected:
		if !hasSession {
			return t.SignIn
		}
	case AuthOnly:
		if hasSession {
			return t.Landing
		}
	}
	return ""
}

func matchAny(prefixes []string, path string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
