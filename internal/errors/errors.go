package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// API errors (API-001 to API-099): nonzero envelope codes
	ErrCodeAPIBusiness ErrorCode = "API-001"
	ErrCodeAPISilent   ErrorCode = "API-002"
	ErrCodeAPIDecode   ErrorCode = "API-003"
	ErrCodeAPIRequest  ErrorCode = "API-004"

	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeSessionExpired ErrorCode = "AUTH-001"
	ErrCodeLoginRejected  ErrorCode = "AUTH-002"
	ErrCodeNotLoggedIn    ErrorCode = "AUTH-003"

	// Transport errors (NET-001 to NET-099)
	ErrCodeNetTimeout     ErrorCode = "NET-001"
	ErrCodeNetServerError ErrorCode = "NET-002"
	ErrCodeNetFailure     ErrorCode = "NET-003"

	// Persisted client state errors (STATE-001 to STATE-099)
	ErrCodeStateCorrupt     ErrorCode = "STATE-001"
	ErrCodeStateReadFailed  ErrorCode = "STATE-002"
	ErrCodeStateWriteFailed ErrorCode = "STATE-003"

	// Navigation errors (ROUTE-001 to ROUTE-099)
	ErrCodeRouteDenied   ErrorCode = "ROUTE-001"
	ErrCodeRouteNotFound ErrorCode = "ROUTE-002"
	ErrCodeRouteLoop     ErrorCode = "ROUTE-003"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid ErrorCode = "CONFIG-001"
	ErrCodeConfigWrite   ErrorCode = "CONFIG-002"
)

// ConsoleError represents an error with code, suggestions, and the backend
// envelope details that produced it (when any).
type ConsoleError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error

	// EnvelopeCode is the backend envelope code, 0 when the failure did not
	// come from an envelope.
	EnvelopeCode int
	// HTTPStatus is the transport status code, 0 when no response was read.
	HTTPStatus int
}

// Error implements the error interface
func (e *ConsoleError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *ConsoleError) Unwrap() error {
	return e.Cause
}

// New creates a new ConsoleError
func New(code ErrorCode, message string) *ConsoleError {
	return &ConsoleError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new ConsoleError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *ConsoleError {
	return &ConsoleError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *ConsoleError) WithSuggestion(suggestion string) *ConsoleError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *ConsoleError) WithSuggestions(suggestions ...string) *ConsoleError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithEnvelope records the envelope code and HTTP status behind the error.
func (e *ConsoleError) WithEnvelope(code, status int) *ConsoleError {
	e.EnvelopeCode = code
	e.HTTPStatus = status
	return e
}

// As finds the first ConsoleError in err's chain.
func As(err error) (*ConsoleError, bool) {
	var ce *ConsoleError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	ce, ok := As(err)
	return ok && ce.Code == code
}

// Category returns the prefix of a code ("API", "AUTH", "NET", ...).
func (c ErrorCode) Category() string {
	if i := strings.IndexByte(string(c), '-'); i > 0 {
		return string(c)[:i]
	}
	return string(c)
}

// IsSessionExpired reports whether err is a session-expiry failure.
func IsSessionExpired(err error) bool {
	return HasCode(err, ErrCodeSessionExpired)
}

// MessageOf returns the user-facing message of err: the ConsoleError message
// when present, otherwise err.Error().
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	if ce, ok := As(err); ok {
		return ce.Message
	}
	return err.Error()
}

// Common error constructors for frequently used errors

// NewSessionExpiredError creates the error returned when the backend reports
// that the caller must re-authenticate.
func NewSessionExpiredError(message string, envelopeCode, status int) *ConsoleError {
	return New(ErrCodeSessionExpired, message).
		WithEnvelope(envelopeCode, status).
		WithSuggestion("Run 'hrconsole login' to sign in again")
}

// NewBusinessError creates an error for a nonzero envelope code.
func NewBusinessError(message string, envelopeCode int, silent bool) *ConsoleError {
	code := ErrCodeAPIBusiness
	if silent {
		code = ErrCodeAPISilent
	}
	return New(code, message).WithEnvelope(envelopeCode, 0)
}

// NewNotLoggedInError creates an error for commands that need a session.
func NewNotLoggedInError() *ConsoleError {
	return New(ErrCodeNotLoggedIn, "not logged in").
		WithSuggestion("Run 'hrconsole login' to authenticate")
}

// NewStateCorruptError creates an error for an unreadable persisted session.
func NewStateCorruptError(key string, cause error) *ConsoleError {
	return Wrap(ErrCodeStateCorrupt, fmt.Sprintf("persisted state %q is corrupt", key), cause).
		WithSuggestion("Run 'hrconsole login' to rebuild the session")
}

// NewRouteNotFoundError creates an unknown route error
func NewRouteNotFoundError(path string) *ConsoleError {
	return New(ErrCodeRouteNotFound, fmt.Sprintf("no view registered for %s", path)).
		WithSuggestion("Run 'hrconsole routes' to list available views")
}

// NewConfigInvalidError creates a configuration error
func NewConfigInvalidError(key string, cause error) *ConsoleError {
	return Wrap(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration value for %s", key), cause).
		WithSuggestion("Run 'hrconsole config view' to inspect the effective configuration")
}
