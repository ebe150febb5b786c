package health

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Manager runs checks in parallel, each under its own timeout.
type Manager struct {
	checkers []Checker
	timeout  time.Duration
}

// NewManager creates a manager. A non-positive timeout means five seconds.
func NewManager(timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Manager{timeout: timeout}
}

// Add registers checkers. Reports list them in this order.
func (m *Manager) Add(checkers ...Checker) {
	m.checkers = append(m.checkers, checkers...)
}

// Names returns the registered checker names in order.
func (m *Manager) Names() []string {
	names := make([]string, len(m.checkers))
	for i, c := range m.checkers {
		names[i] = c.Name()
	}
	return names
}

// Check is one named result of a run.
type Check struct {
	Name   string `json:"name" yaml:"name"`
	Result `yaml:",inline"`
}

// Report is the outcome of a run.
type Report struct {
	Status Status  `json:"status" yaml:"status"`
	Checks []Check `json:"checks" yaml:"checks"`
}

// Get returns the result of the named check.
func (r Report) Get(name string) (*Result, bool) {
	for i := range r.Checks {
		if r.Checks[i].Name == name {
			return &r.Checks[i].Result, true
		}
	}
	return nil, false
}

// Unhealthy reports whether the named check ran and failed.
func (r Report) Unhealthy(name string) bool {
	res, ok := r.Get(name)
	return ok && res.Status == StatusUnhealthy
}

// Run executes every check. A failing check never stops the others; a check
// that returns nil counts as unhealthy.
func (m *Manager) Run(ctx context.Context) Report {
	checks := make([]Check, len(m.checkers))

	var g errgroup.Group
	for i, checker := range m.checkers {
		g.Go(func() error {
			checkCtx, cancel := context.WithTimeout(ctx, m.timeout)
			defer cancel()

			start := time.Now()
			result := checker.Check(checkCtx)
			if result == nil {
				result = Unhealthy("check returned no result")
			}
			if result.Latency == 0 {
				result.Latency = time.Since(start)
			}
			checks[i] = Check{Name: checker.Name(), Result: *result}
			return nil
		})
	}
	_ = g.Wait()

	statuses := make([]Status, len(checks))
	for i, c := range checks {
		statuses[i] = c.Status
	}
	return Report{Status: Worst(statuses...), Checks: checks}
}
