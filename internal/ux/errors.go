package ux

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/crossorg/hrconsole/internal/errors"
)

// ErrorWithSuggestion wraps an error with helpful recovery suggestions
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\n💡 Suggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{Err: err, Suggestion: suggestion}
}

// codeHints suggest a next step per console error code.
var codeHints = map[errors.ErrorCode]string{
	errors.ErrCodeNetFailure:       "Check api.base_url with 'hrconsole config get api.base_url', or start a local backend with 'hrconsole mock serve'",
	errors.ErrCodeNetTimeout:       "Raise the timeout with 'hrconsole config set api.timeout 30s'",
	errors.ErrCodeNetServerError:   "The backend failed; retry later or rerun with --log-level debug",
	errors.ErrCodeSessionExpired:   "Log in again with 'hrconsole login'",
	errors.ErrCodeLoginRejected:    "Check the username and password; 'hrconsole mock serve --help' lists the development accounts",
	errors.ErrCodeRouteDenied:      "Run 'hrconsole whoami' to see your role and 'hrconsole routes' for the pages it may open",
	errors.ErrCodeRouteNotFound:    "Run 'hrconsole routes' to list the pages",
	errors.ErrCodeStateReadFailed:  "Check that storage.dir is readable, see 'hrconsole config get storage.dir'",
	errors.ErrCodeStateWriteFailed: "Check that storage.dir is writable, see 'hrconsole config get storage.dir'",
	errors.ErrCodeConfigInvalid:    "Inspect the settings with 'hrconsole config view'",
}

// envelopeHints apply to business errors by backend code.
var envelopeHints = map[int]string{
	40101: "Your role may not call this endpoint; ask a company administrator",
	40400: "The record may have been deleted; list it again to get a current id",
}

// textHints match errors that never became console errors.
var textHints = []struct {
	needles    []string
	suggestion string
}{
	{[]string{"connection refused", "no such host"}, "Check your network connection and api.base_url"},
	{[]string{"permission denied"}, "Check file permissions of the console home directory (~/.hrconsole)"},
	{[]string{"address already in use"}, "Another process holds the port; pass --addr or set mock.addr"},
}

// Hint returns the suggestion for err, or "" when there is none.
func Hint(err error) string {
	if ce, ok := errors.As(err); ok {
		if ce.Code == errors.ErrCodeAPIBusiness {
			return envelopeHints[ce.EnvelopeCode]
		}
		return codeHints[ce.Code]
	}
	msg := err.Error()
	for _, h := range textHints {
		for _, n := range h.needles {
			if strings.Contains(msg, n) {
				return h.suggestion
			}
		}
	}
	return ""
}

// EnhanceError adds a recovery suggestion to errors that do not carry one.
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}
	if ce, ok := errors.As(err); ok && len(ce.Suggestions) > 0 {
		return err
	}
	var ews *ErrorWithSuggestion
	if stderrors.As(err, &ews) {
		return err
	}
	if hint := Hint(err); hint != "" {
		return NewErrorWithSuggestion(err, hint)
	}
	return err
}

// FormatError enhances err and prefixes it with what was being done.
func FormatError(err error, doing string) error {
	if err == nil {
		return nil
	}
	enhanced := EnhanceError(err)
	if doing != "" {
		return fmt.Errorf("%s: %w", doing, enhanced)
	}
	return enhanced
}
