package router

import (
	"net/url"

	"github.com/crossorg/hrconsole/internal/log"
	"github.com/crossorg/hrconsole/internal/session"
)

// publicPaths are reachable without a session.
var publicPaths = map[string]bool{
	"/login":            true,
	"/diagnostic":       true,
	"/register-company": true,
}

// SessionState is what the guard needs from the session store.
type SessionState interface {
	Snapshot() session.Snapshot
	HasPersistedLogin() bool
	RestoreLoginState()
	Clear()
}

// Decision is the outcome of a guard check.
type Decision struct {
	// Allow is true when the target may be opened as is.
	Allow bool
	// Redirect is the path to open instead when Allow is false.
	Redirect string
	Reason   string

	Route  Route
	Params map[string]string
	Known  bool
}

// Guard checks navigations against the route table and the session.
type Guard struct {
	table   *Table
	session SessionState
	log     *log.Logger
}

// NewGuard creates a guard.
func NewGuard(table *Table, s SessionState, logger *log.Logger) *Guard {
	if logger == nil {
		logger = log.Discard()
	}
	return &Guard{table: table, session: s, log: logger.WithComponent("router")}
}

// Table returns the guarded route table.
func (g *Guard) Table() *Table {
	return g.table
}

// Check decides whether target may be opened. Unknown paths are treated as
// protected routes without a role restriction.
func (g *Guard) Check(target string) Decision {
	target = Normalize(target)
	path := stripQuery(target)

	if !g.session.Snapshot().LoggedIn && g.session.HasPersistedLogin() {
		g.session.RestoreLoginState()
	}
	snap := g.session.Snapshot()

	route, params, known := g.table.Match(path)
	d := Decision{Route: route, Params: params, Known: known}

	if publicPaths[path] {
		if path == PathLogin && snap.LoggedIn {
			d.Redirect, d.Reason = PathHome, "already logged in"
			return d
		}
		d.Allow = true
		return d
	}

	if !snap.LoggedIn {
		g.session.Clear()
		d.Redirect = PathLogin + "?redirect=" + url.QueryEscape(target)
		d.Reason = "login required"
		return d
	}

	if !route.Allows(snap.Role) {
		g.log.Debug("navigation denied", "path", path, "role", string(snap.Role))
		d.Redirect, d.Reason = PathHome, "role not permitted"
		return d
	}

	d.Allow = true
	return d
}

// RedirectTarget returns the ?redirect= value of a login path, or "".
func RedirectTarget(loginPath string) string {
	u, err := url.Parse(loginPath)
	if err != nil {
		return ""
	}
	return u.Query().Get("redirect")
}
