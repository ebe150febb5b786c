package router

import (
	"fmt"
	"sync"

	"github.com/crossorg/hrconsole/internal/errors"
)

// DefaultMaxRedirects bounds guard redirect chains.
const DefaultMaxRedirects = 3

// Resolution is where a navigation ended up.
type Resolution struct {
	// Path is the final path including any query string.
	Path   string
	Route  Route
	Params map[string]string
	Known  bool
	// Requested is the path originally asked for.
	Requested string
}

// Redirected reports whether the guard sent the navigation elsewhere.
func (r Resolution) Redirected() bool {
	return r.Path != r.Requested
}

// Navigator tracks the current location and runs the guard on every push.
type Navigator struct {
	guard        *Guard
	maxRedirects int

	mu       sync.Mutex
	location string
	listener func(Resolution)
}

// NewNavigator creates a navigator with no current location.
func NewNavigator(g *Guard) *Navigator {
	return &Navigator{guard: g, maxRedirects: DefaultMaxRedirects}
}

// OnNavigate registers fn to run after each completed navigation.
func (n *Navigator) OnNavigate(fn func(Resolution)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listener = fn
}

// Location returns the current path, "" before the first navigation.
func (n *Navigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

// Path returns the current path without its query string.
func (n *Navigator) Path() string {
	return stripQuery(n.Location())
}

// Push navigates to target, following guard redirects.
func (n *Navigator) Push(target string) (Resolution, error) {
	requested := Normalize(target)
	current := requested

	for hop := 0; hop <= n.maxRedirects; hop++ {
		d := n.guard.Check(current)
		if !d.Allow {
			current = d.Redirect
			continue
		}

		res := Resolution{
			Path:      current,
			Route:     d.Route,
			Params:    d.Params,
			Known:     d.Known,
			Requested: requested,
		}

		n.mu.Lock()
		n.location = current
		listener := n.listener
		n.mu.Unlock()

		if listener != nil {
			listener(res)
		}
		return res, nil
	}

	return Resolution{}, errors.New(errors.ErrCodeRouteLoop,
		fmt.Sprintf("navigation to %s exceeded %d redirects", requested, n.maxRedirects))
}
