package exitcode

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/crossorg/hrconsole/internal/errors"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"Success", Success, 0},
		{"GeneralError", GeneralError, 1},
		{"UsageError", UsageError, 2},
		{"BusinessError", BusinessError, 3},
		{"StateError", StateError, 4},
		{"AuthError", AuthError, 5},
		{"NetworkError", NetworkError, 6},
		{"Interrupted", Interrupted, 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("Exit code %s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error returns success",
			err:      nil,
			expected: Success,
		},
		{
			name:     "cancelled context",
			err:      fmt.Errorf("listing employees: %w", context.Canceled),
			expected: Interrupted,
		},
		{
			name:     "cancellation wrapped in a console error",
			err:      errors.Wrap(errors.ErrCodeAPIRequest, "prompt cancelled", context.Canceled),
			expected: Interrupted,
		},
		{
			name:     "business error",
			err:      errors.NewBusinessError("密码错误", 1, false),
			expected: BusinessError,
		},
		{
			name:     "silent business error",
			err:      errors.NewBusinessError("员工未分配公司", 1, true),
			expected: BusinessError,
		},
		{
			name:     "undecodable response",
			err:      errors.New(errors.ErrCodeAPIDecode, "bad body"),
			expected: BusinessError,
		},
		{
			name:     "bad request arguments",
			err:      errors.New(errors.ErrCodeAPIRequest, "invalid id"),
			expected: UsageError,
		},
		{
			name:     "session expired",
			err:      errors.NewSessionExpiredError("登录已过期，请重新登录", 40100, 200),
			expected: AuthError,
		},
		{
			name:     "not logged in",
			err:      errors.NewNotLoggedInError(),
			expected: AuthError,
		},
		{
			name:     "route denied",
			err:      errors.New(errors.ErrCodeRouteDenied, "your role may not open /companies"),
			expected: AuthError,
		},
		{
			name:     "unknown route",
			err:      errors.NewRouteNotFoundError("/nowhere"),
			expected: UsageError,
		},
		{
			name:     "timeout",
			err:      errors.New(errors.ErrCodeNetTimeout, "request timed out"),
			expected: NetworkError,
		},
		{
			name:     "network failure",
			err:      errors.New(errors.ErrCodeNetFailure, "connection refused"),
			expected: NetworkError,
		},
		{
			name:     "corrupt state",
			err:      errors.NewStateCorruptError("userInfo", stderrors.New("bad json")),
			expected: StateError,
		},
		{
			name:     "invalid config",
			err:      errors.NewConfigInvalidError("toast.max_count", stderrors.New("must be positive")),
			expected: UsageError,
		},
		{
			name:     "wrapped console error",
			err:      fmt.Errorf("open: %w", errors.New(errors.ErrCodeNetServerError, "bad gateway")),
			expected: NetworkError,
		},
		{
			name:     "unknown command",
			err:      stderrors.New(`unknown command "foo" for "hrconsole"`),
			expected: UsageError,
		},
		{
			name:     "unknown flag",
			err:      stderrors.New("unknown flag: --bar"),
			expected: UsageError,
		},
		{
			name:     "arg count",
			err:      stderrors.New("accepts 1 arg(s), received 0"),
			expected: UsageError,
		},
		{
			name:     "required flag",
			err:      stderrors.New(`required flag(s) "id" not set`),
			expected: UsageError,
		},
		{
			name:     "generic error",
			err:      stderrors.New("something went wrong"),
			expected: GeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := DetermineExitCode(tt.err)
			if code != tt.expected {
				t.Errorf("DetermineExitCode(%v) = %d, want %d", tt.err, code, tt.expected)
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{Success, "Success"},
		{GeneralError, "General error"},
		{UsageError, "Usage error (invalid flags or arguments)"},
		{BusinessError, "Request rejected by the server"},
		{StateError, "Local state error"},
		{AuthError, "Authentication error"},
		{NetworkError, "Network error"},
		{Interrupted, "Interrupted"},
		{99, "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := GetExitCodeDescription(tt.code)
			if result != tt.expected {
				t.Errorf("GetExitCodeDescription(%d) = %s, want %s", tt.code, result, tt.expected)
			}
		})
	}
}
