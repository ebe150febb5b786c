package health

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResultBuilders(t *testing.T) {
	r := Degraded("not logged in").With("suggestion", "run 'hrconsole login'")

	if r.Status != StatusDegraded || r.Status.String() != "degraded" {
		t.Errorf("Status = %v, want degraded", r.Status)
	}
	if r.Details["suggestion"] != "run 'hrconsole login'" {
		t.Errorf("Details = %v", r.Details)
	}
	if Healthy("ok").Details != nil {
		t.Error("a result without details must not allocate them")
	}
	if Healthy("ok").Status != StatusHealthy || Unhealthy("x").Status != StatusUnhealthy {
		t.Error("constructor statuses do not match")
	}
}

func TestWorst(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"none", nil, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
		{"unknown counts as unhealthy", []Status{StatusHealthy, Status("")}, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Worst(tt.statuses...); got != tt.want {
				t.Errorf("Worst() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAPIChecker(t *testing.T) {
	ok := NewAPIChecker("http://localhost:8123/api", func(context.Context) error { return nil })
	if r := ok.Check(context.Background()); r.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", r.Status)
	}

	down := NewAPIChecker("http://localhost:1/api", func(context.Context) error {
		return errors.New("connection refused")
	})
	r := down.Check(context.Background())
	if r.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy", r.Status)
	}
	if r.Details["error"] != "connection refused" || r.Details["base_url"] != "http://localhost:1/api" {
		t.Errorf("Details = %v", r.Details)
	}
	if down.Name() != "api-backend" {
		t.Errorf("Name() = %q", down.Name())
	}
}

func TestStateDirChecker(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	r := NewStateDirChecker(dir).Check(context.Background())
	if r.Status != StatusHealthy {
		t.Fatalf("Status = %v (%s), want healthy", r.Status, r.Message)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("probe file left behind: %v", entries)
	}

	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if r := NewStateDirChecker(file).Check(context.Background()); r.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy for a file path", r.Status)
	}
}

func TestSessionChecker(t *testing.T) {
	out := NewSessionChecker(func() (string, bool) { return "", false })
	if r := out.Check(context.Background()); r.Status != StatusDegraded {
		t.Errorf("Status = %v, want degraded", r.Status)
	}

	in := NewSessionChecker(func() (string, bool) { return "hr1", true })
	r := in.Check(context.Background())
	if r.Status != StatusHealthy || r.Details["username"] != "hr1" {
		t.Errorf("got %v %v", r.Status, r.Details)
	}
}
