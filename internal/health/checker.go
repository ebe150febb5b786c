// Package health runs the checks behind 'hrconsole doctor'.
//
//	manager := health.NewManager(5 * time.Second)
//	manager.Add(health.NewAPIChecker(baseURL, client.Ping))
//	manager.Add(health.NewStateDirChecker(dir))
//
//	report := manager.Run(ctx)
//	if report.Status == health.StatusUnhealthy { ... }
package health

import (
	"context"
	"time"
)

// Checker verifies one dependency of the console.
type Checker interface {
	// Name is lowercase with hyphens, e.g. "api-backend".
	Name() string

	// Check must respect the context deadline.
	Check(ctx context.Context) *Result
}

// Status of a check. The zero value is not a valid status.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) rank() int {
	switch s {
	case StatusHealthy:
		return 0
	case StatusDegraded:
		return 1
	default:
		return 2
	}
}

// Worst returns the most severe of the statuses, healthy for none.
func Worst(statuses ...Status) Status {
	worst := StatusHealthy
	for _, s := range statuses {
		if s.rank() > worst.rank() {
			worst = s
		}
	}
	if worst.rank() == 2 {
		return StatusUnhealthy
	}
	return worst
}

// Result is the outcome of one check.
type Result struct {
	Status  Status            `json:"status" yaml:"status"`
	Message string            `json:"message" yaml:"message"`
	Details map[string]string `json:"details,omitempty" yaml:"details,omitempty"`
	Latency time.Duration     `json:"latency" yaml:"latency"`
}

func newResult(status Status, message string) *Result {
	return &Result{Status: status, Message: message}
}

func Healthy(message string) *Result   { return newResult(StatusHealthy, message) }
func Degraded(message string) *Result  { return newResult(StatusDegraded, message) }
func Unhealthy(message string) *Result { return newResult(StatusUnhealthy, message) }

// With adds a detail and returns r.
func (r *Result) With(key, value string) *Result {
	if r.Details == nil {
		r.Details = make(map[string]string)
	}
	r.Details[key] = value
	return r
}
