// Package exitcode maps command errors to process exit codes.
package exitcode

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/crossorg/hrconsole/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// BusinessError indicates the backend rejected the request
	BusinessError = 3

	// StateError indicates local state could not be read or written
	StateError = 4

	// AuthError indicates an authentication or authorization failure
	AuthError = 5

	// NetworkError indicates a network connectivity issue
	NetworkError = 6

	// Interrupted indicates the user cancelled with Ctrl+C (128 + SIGINT)
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}
	Exit(DetermineExitCode(err))
}

// DetermineExitCode returns the exit code for err. Cancellation wins; console
// errors map by category; anything else is checked for cobra usage messages.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}
	if stderrors.Is(err, context.Canceled) {
		return Interrupted
	}

	if ce, ok := errors.As(err); ok {
		switch ce.Code.Category() {
		case "API":
			if ce.Code == errors.ErrCodeAPIRequest {
				return UsageError
			}
			return BusinessError
		case "AUTH", "ROUTE":
			if ce.Code == errors.ErrCodeRouteNotFound {
				return UsageError
			}
			return AuthError
		case "NET":
			return NetworkError
		case "STATE":
			return StateError
		case "CONFIG":
			return UsageError
		}
		return GeneralError
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range usagePatterns {
		if strings.Contains(msg, pattern) {
			return UsageError
		}
	}
	return GeneralError
}

var usagePatterns = []string{
	"unknown command",
	"unknown flag",
	"unknown shorthand flag",
	"invalid argument",
	"required flag",
	"accepts ",
	"requires at least",
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case BusinessError:
		return "Request rejected by the server"
	case StateError:
		return "Local state error"
	case AuthError:
		return "Authentication error"
	case NetworkError:
		return "Network error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
