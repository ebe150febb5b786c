package tui

import (
	"context"
	"testing"

	"github.com/crossorg/hrconsole/internal/errors"
	"github.com/crossorg/hrconsole/internal/exitcode"
)

func TestShouldPromptHonoursEnvironment(t *testing.T) {
	for _, name := range noPromptEnv {
		t.Run(name, func(t *testing.T) {
			t.Setenv(name, "1")
			if ShouldPrompt() {
				t.Errorf("ShouldPrompt() = true with %s set", name)
			}
		})
	}
}

func TestShouldPromptNeedsTerminal(t *testing.T) {
	for _, name := range noPromptEnv {
		t.Setenv(name, "")
	}
	if ShouldPrompt() != IsInteractive() {
		t.Error("without CI markers ShouldPrompt must follow IsInteractive")
	}
}

func TestPromptForMultiSelectNeedsOptions(t *testing.T) {
	if _, err := PromptForMultiSelect(context.Background(), "Choose:", []Choice[int64]{}, 4); err == nil {
		t.Error("expected error when no options provided, got nil")
	}
}

func TestHuhOptionsKeepOrder(t *testing.T) {
	opts := huhOptions([]Choice[string]{{Label: "张三 · 4.5", Value: "1"}, {Label: "李四", Value: "2"}})
	if len(opts) != 2 || opts[0].Value != "1" || opts[1].Key != "李四" {
		t.Errorf("huhOptions() = %+v", opts)
	}
}

func TestRequired(t *testing.T) {
	validate := required("username")
	if err := validate("  "); err == nil {
		t.Error("expected blank input to be rejected")
	}
	if err := validate("admin"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoginFieldsBindCredentials(t *testing.T) {
	c := Credentials{Username: "hr1"}
	if fields := loginFields(&c); len(fields) != 2 {
		t.Fatalf("loginFields() = %d fields, want 2", len(fields))
	}
	if c.Username != "hr1" {
		t.Errorf("prefilled username changed to %q", c.Username)
	}
}

func TestCancelledPromptExitsAsInterrupted(t *testing.T) {
	if !errors.HasCode(ErrCancelled, errors.ErrCodeAPIRequest) {
		t.Error("ErrCancelled lost its code")
	}
	if got := exitcode.DetermineExitCode(ErrCancelled); got != exitcode.Interrupted {
		t.Errorf("exit code = %d, want %d", got, exitcode.Interrupted)
	}
}
