package tui

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/crossorg/hrconsole/internal/errors"
)

// ErrCancelled is returned when the user aborts a prompt with ctrl+c or esc.
var ErrCancelled = errors.Wrap(errors.ErrCodeAPIRequest, "prompt cancelled", context.Canceled)

// run shows a single-group form.
func run(ctx context.Context, fields ...huh.Field) error {
	err := huh.NewForm(huh.NewGroup(fields...)).RunWithContext(ctx)
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, huh.ErrUserAborted):
		return ErrCancelled
	default:
		return fmt.Errorf("prompt failed: %w", err)
	}
}

// Prompt is a free-text question.
type Prompt struct {
	Message     string
	Default     string
	Placeholder string
	Required    bool
}

// PromptForString asks p and returns the trimmed answer.
func PromptForString(ctx context.Context, p Prompt) (string, error) {
	value := p.Default
	input := huh.NewInput().
		Title(p.Message).
		Placeholder(p.Placeholder).
		Value(&value)
	if p.Required {
		input = input.Validate(required(p.Message))
	}
	if err := run(ctx, input); err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

// Credentials are the answers of the login form.
type Credentials struct {
	Username string
	Password string
}

// required rejects blank answers.
func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// loginFields builds the username and password inputs. The password is masked.
func loginFields(c *Credentials) []huh.Field {
	return []huh.Field{
		huh.NewInput().
			Title("用户名").
			Placeholder("admin").
			Value(&c.Username).
			Validate(required("username")),
		huh.NewInput().
			Title("密码").
			EchoMode(huh.EchoModePassword).
			Value(&c.Password).
			Validate(required("password")),
	}
}

// PromptForLogin asks for credentials, prefilling the username when known.
func PromptForLogin(ctx context.Context, username string) (Credentials, error) {
	c := Credentials{Username: username}
	if err := run(ctx, loginFields(&c)...); err != nil {
		return Credentials{}, err
	}
	c.Username = strings.TrimSpace(c.Username)
	return c, nil
}

// PromptForConfirmation asks a yes/no question.
func PromptForConfirmation(ctx context.Context, message string, defaultValue bool) (bool, error) {
	confirmed := defaultValue
	err := run(ctx, huh.NewConfirm().
		Title(message).
		Affirmative("确定").
		Negative("取消").
		Value(&confirmed))
	return confirmed, err
}

// Choice is one labelled option of a select prompt.
type Choice[T comparable] struct {
	Label string
	Value T
}

func huhOptions[T comparable](choices []Choice[T]) []huh.Option[T] {
	out := make([]huh.Option[T], len(choices))
	for i, c := range choices {
		out[i] = huh.NewOption(c.Label, c.Value)
	}
	return out
}

// PromptForMultiSelect lets the user pick between one and limit options;
// limit <= 0 means unlimited.
func PromptForMultiSelect[T comparable](ctx context.Context, message string, options []Choice[T], limit int) ([]T, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("no options provided")
	}

	var selected []T
	field := huh.NewMultiSelect[T]().
		Title(message).
		Options(huhOptions(options)...).
		Value(&selected).
		Validate(func(picked []T) error {
			if len(picked) == 0 {
				return fmt.Errorf("pick at least one")
			}
			return nil
		})
	if limit > 0 {
		field = field.Limit(limit)
	}
	if err := run(ctx, field); err != nil {
		return nil, err
	}
	return selected, nil
}

// IsInteractive returns true if stdin is a terminal (not piped)
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// noPromptEnv lists variables that turn prompts off: HRCONSOLE_NO_PROMPT and
// the usual CI markers.
var noPromptEnv = []string{
	"HRCONSOLE_NO_PROMPT",
	"CI",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"JENKINS_URL",
	"BUILDKITE",
}

// ShouldPrompt reports whether commands may ask questions.
func ShouldPrompt() bool {
	for _, name := range noPromptEnv {
		if os.Getenv(name) != "" {
			return false
		}
	}
	return IsInteractive()
}
