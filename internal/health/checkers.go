package health

import (
	"context"
	"os"
	"path/filepath"
)

// APIChecker pings the platform backend.
type APIChecker struct {
	baseURL string
	ping    func(ctx context.Context) error
}

func NewAPIChecker(baseURL string, ping func(ctx context.Context) error) *APIChecker {
	return &APIChecker{baseURL: baseURL, ping: ping}
}

func (c *APIChecker) Name() string {
	return "api-backend"
}

func (c *APIChecker) Check(ctx context.Context) *Result {
	if err := c.ping(ctx); err != nil {
		return Unhealthy("backend unreachable").
			With("base_url", c.baseURL).
			With("error", err.Error())
	}
	return Healthy("backend reachable").With("base_url", c.baseURL)
}

// StateDirChecker verifies the session state directory can be written.
type StateDirChecker struct {
	dir string
}

func NewStateDirChecker(dir string) *StateDirChecker {
	return &StateDirChecker{dir: dir}
}

func (c *StateDirChecker) Name() string {
	return "state-dir"
}

func (c *StateDirChecker) Check(ctx context.Context) *Result {
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return Unhealthy("state directory cannot be created").
			With("dir", c.dir).
			With("error", err.Error())
	}
	f, err := os.CreateTemp(c.dir, ".doctor-*")
	if err != nil {
		return Unhealthy("state directory is not writable").
			With("dir", c.dir).
			With("error", err.Error())
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)

	abs, _ := filepath.Abs(c.dir)
	return Healthy("state directory writable").With("dir", abs)
}

// SessionChecker reports whether a session is held. No session is degraded:
// public pages still work.
type SessionChecker struct {
	user func() (username string, loggedIn bool)
}

func NewSessionChecker(user func() (string, bool)) *SessionChecker {
	return &SessionChecker{user: user}
}

func (c *SessionChecker) Name() string {
	return "session"
}

func (c *SessionChecker) Check(ctx context.Context) *Result {
	username, ok := c.user()
	if !ok {
		return Degraded("not logged in").
			With("suggestion", "run 'hrconsole login'")
	}
	return Healthy("logged in").With("username", username)
}
