// Package console wires the console's components together. One App is built
// per process; commands and the interactive shell both go through it.
package console

import (
	"context"
	"fmt"
	"net/http"

	"github.com/crossorg/hrconsole/internal/config"
	"github.com/crossorg/hrconsole/internal/errors"
	"github.com/crossorg/hrconsole/internal/log"
	"github.com/crossorg/hrconsole/internal/platform"
	"github.com/crossorg/hrconsole/internal/router"
	"github.com/crossorg/hrconsole/internal/session"
	"github.com/crossorg/hrconsole/internal/storage"
	"github.com/crossorg/hrconsole/internal/toast"
	"github.com/crossorg/hrconsole/internal/ux"
)

// Options overrides pieces of the wiring, mostly for tests.
type Options struct {
	Presenter  toast.Presenter
	Logger     *log.Logger
	Storage    storage.Store
	HTTPClient *http.Client
	Routes     []router.Route
}

// App holds the wired console.
type App struct {
	Config *config.Config
	Log    *log.Logger

	Storage    storage.Store
	Toasts     *toast.Limiter
	Client     *platform.Client
	Session    *session.Store
	Guard      *router.Guard
	Nav        *router.Navigator
	Redirector *router.LoginRedirector
}

// New builds the console from cfg. The client is created before the session
// store and the redirector, which are attached to it afterwards.
func New(cfg *config.Config, opts Options) (*App, error) {
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	if opts.Presenter == nil {
		opts.Presenter = toast.NopPresenter{}
	}
	if opts.Storage == nil {
		opts.Storage = storage.NewOSStore(cfg.Storage.Dir)
	}
	if opts.Routes == nil {
		opts.Routes = router.DefaultRoutes
	}

	a := &App{
		Config:  cfg,
		Log:     opts.Logger,
		Storage: opts.Storage,
	}

	a.Toasts = toast.NewLimiter(opts.Presenter, toast.Options{
		MaxVisible:   cfg.Toast.MaxVisible,
		MaxPerWindow: cfg.Toast.MaxPerWindow,
		Window:       cfg.Toast.Window,
		Duration:     cfg.Toast.Duration,
		Logger:       opts.Logger,
	})

	client, err := platform.NewClient(platform.Options{
		BaseURL:      cfg.API.BaseURL,
		Timeout:      cfg.API.Timeout,
		SilentErrors: cfg.API.SilentErrors,
		Notifier:     a.Toasts,
		Logger:       opts.Logger,
		HTTPClient:   opts.HTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	a.Client = client

	a.Session = session.NewStore(client, opts.Storage, opts.Logger)
	client.SetTokenSource(a.Session)

	a.Guard = router.NewGuard(router.NewTable(opts.Routes), a.Session, opts.Logger)
	a.Nav = router.NewNavigator(a.Guard)
	a.Redirector = router.NewLoginRedirector(a.Session, a.Nav, a.Toasts, opts.Logger)
	client.SetSessionExpiryHandler(a.Redirector)

	a.Session.RestoreLoginState()
	return a, nil
}

// Open navigates to path and renders the view found there. A navigation that
// the guard sends elsewhere is reported as an error rather than rendered.
func (a *App) Open(ctx context.Context, path string) (ux.Renderable, error) {
	res, err := a.Nav.Push(path)
	if err != nil {
		return nil, err
	}
	if err := redirectError(res); err != nil {
		return nil, err
	}
	return a.Render(ctx, res)
}

// Location returns the path last navigated to.
func (a *App) Location() string {
	return a.Nav.Location()
}

// Authorize runs the guard for path without rendering anything.
func (a *App) Authorize(path string) error {
	res, err := a.Nav.Push(path)
	if err != nil {
		return err
	}
	return redirectError(res)
}

func redirectError(res router.Resolution) error {
	if !res.Redirected() {
		if !res.Known {
			return errors.NewRouteNotFoundError(res.Path)
		}
		return nil
	}
	switch stripQuery(res.Path) {
	case router.PathLogin:
		if stripQuery(res.Requested) == router.PathLogin {
			return nil
		}
		return errors.NewNotLoggedInError()
	case router.PathHome:
		if stripQuery(res.Requested) == router.PathLogin {
			return nil
		}
		return errors.New(errors.ErrCodeRouteDenied,
			fmt.Sprintf("your role may not open %s", res.Requested))
	}
	return nil
}

// Login signs in and persists the session.
func (a *App) Login(ctx context.Context, username, password string) error {
	ok, err := a.Session.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(errors.ErrCodeLoginRejected, "login returned no user")
	}
	a.Toasts.Success(fmt.Sprintf("欢迎回来，%s", a.Session.Snapshot().DisplayName()))
	return nil
}

// Logout ends the session. Toasts already on screen are left alone.
func (a *App) Logout(ctx context.Context) {
	a.Session.Logout(ctx)
}

// RequireLogin fails when no session is held.
func (a *App) RequireLogin() error {
	if !a.Session.IsLoggedIn() {
		return errors.NewNotLoggedInError()
	}
	return nil
}
