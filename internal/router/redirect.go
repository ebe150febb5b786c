package router

import (
	"sync/atomic"
	"time"

	"github.com/crossorg/hrconsole/internal/log"
	"github.com/crossorg/hrconsole/internal/platform"
)

// Redirect delays.
const (
	DefaultNavigateDelay = 100 * time.Millisecond
	DefaultSettleDelay   = 500 * time.Millisecond
	DefaultOnLoginDelay  = 1000 * time.Millisecond
)

// SessionClearer drops the session.
type SessionClearer interface {
	Clear()
}

// LoginRedirector sends the console back to the login view when the backend
// reports an expired session. Only one redirect runs at a time; reports that
// arrive while one is in flight are ignored.
type LoginRedirector struct {
	session  SessionClearer
	nav      *Navigator
	notifier platform.Notifier
	log      *log.Logger

	NavigateDelay time.Duration
	SettleDelay   time.Duration
	OnLoginDelay  time.Duration

	redirecting atomic.Bool
}

// NewLoginRedirector creates a redirector with the default delays.
func NewLoginRedirector(s SessionClearer, nav *Navigator, n platform.Notifier, logger *log.Logger) *LoginRedirector {
	if logger == nil {
		logger = log.Discard()
	}
	return &LoginRedirector{
		session:       s,
		nav:           nav,
		notifier:      n,
		log:           logger.WithComponent("redirect"),
		NavigateDelay: DefaultNavigateDelay,
		SettleDelay:   DefaultSettleDelay,
		OnLoginDelay:  DefaultOnLoginDelay,
	}
}

// Redirecting reports whether a redirect is in flight.
func (r *LoginRedirector) Redirecting() bool {
	return r.redirecting.Load()
}

// HandleSessionExpired clears the session, tells the user and navigates to
// the login view.
func (r *LoginRedirector) HandleSessionExpired() {
	if !r.redirecting.CompareAndSwap(false, true) {
		return
	}

	r.session.Clear()
	if r.notifier != nil {
		r.notifier.Error(platform.MsgSessionExpired)
	}

	if r.nav.Path() == PathLogin {
		time.AfterFunc(r.OnLoginDelay, r.reset)
		return
	}

	time.AfterFunc(r.NavigateDelay, func() {
		if _, err := r.nav.Push(PathLogin); err != nil {
			r.log.WithError(err).Warn("redirect to login failed")
		}
		time.AfterFunc(r.SettleDelay, r.reset)
	})
}

func (r *LoginRedirector) reset() {
	r.redirecting.Store(false)
}

var _ platform.SessionExpiryHandler = (*LoginRedirector)(nil)
