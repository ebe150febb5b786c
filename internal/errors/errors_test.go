package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeAPIBusiness, "test error message")

	if err.Code != ErrCodeAPIBusiness {
		t.Errorf("expected code %s, got %s", ErrCodeAPIBusiness, err.Code)
	}

	if err.Message != "test error message" {
		t.Errorf("expected message 'test error message', got '%s'", err.Message)
	}

	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying error")
	err := Wrap(ErrCodeStateReadFailed, "failed to read state", cause)

	if err.Code != ErrCodeStateReadFailed {
		t.Errorf("expected code %s, got %s", ErrCodeStateReadFailed, err.Code)
	}

	if err.Cause != cause {
		t.Errorf("expected cause to be set")
	}

	if !errors.Is(err, cause) {
		t.Errorf("Wrap should support errors.Is")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConsoleError
		wantCode string
		wantMsg  string
	}{
		{
			name:     "simple error",
			err:      New(ErrCodeNetTimeout, "request timed out"),
			wantCode: "NET-001",
			wantMsg:  "request timed out",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeStateWriteFailed, "write failed", fmt.Errorf("permission denied")),
			wantCode: "STATE-003",
			wantMsg:  "permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()

			if !strings.Contains(errStr, tt.wantCode) {
				t.Errorf("error string should contain code %s, got: %s", tt.wantCode, errStr)
			}

			if !strings.Contains(errStr, tt.wantMsg) {
				t.Errorf("error string should contain message '%s', got: %s", tt.wantMsg, errStr)
			}
		})
	}
}

func TestWithSuggestions(t *testing.T) {
	err := New(ErrCodeRouteDenied, "denied").
		WithSuggestions("Suggestion 1", "Suggestion 2")

	if len(err.Suggestions) != 2 {
		t.Errorf("expected 2 suggestions, got %d", len(err.Suggestions))
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "Suggestions:") {
		t.Errorf("error string should contain suggestions section")
	}
	for _, suggestion := range err.Suggestions {
		if !strings.Contains(errStr, suggestion) {
			t.Errorf("error string should contain suggestion: %s", suggestion)
		}
	}
}

func TestAsThroughWrapping(t *testing.T) {
	inner := NewSessionExpiredError("登录已过期", 40100, 200)
	wrapped := fmt.Errorf("listing employees: %w", inner)

	ce, ok := As(wrapped)
	if !ok {
		t.Fatal("As should find the ConsoleError")
	}
	if ce.EnvelopeCode != 40100 {
		t.Errorf("EnvelopeCode = %d, want 40100", ce.EnvelopeCode)
	}
	if !IsSessionExpired(wrapped) {
		t.Error("IsSessionExpired should be true")
	}
	if IsSessionExpired(errors.New("plain")) {
		t.Error("IsSessionExpired should be false for plain errors")
	}
}

func TestNewBusinessError(t *testing.T) {
	loud := NewBusinessError("余额不足", 50001, false)
	if loud.Code != ErrCodeAPIBusiness {
		t.Errorf("expected %s, got %s", ErrCodeAPIBusiness, loud.Code)
	}

	silent := NewBusinessError("员工未分配部门", 1, true)
	if silent.Code != ErrCodeAPISilent {
		t.Errorf("expected %s, got %s", ErrCodeAPISilent, silent.Code)
	}
	if silent.EnvelopeCode != 1 {
		t.Errorf("EnvelopeCode = %d, want 1", silent.EnvelopeCode)
	}
}

func TestMessageOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"console error", New(ErrCodeNetServerError, "服务器错误，请稍后重试"), "服务器错误，请稍后重试"},
		{"wrapped", fmt.Errorf("ctx: %w", New(ErrCodeAPIBusiness, "boom")), "boom"},
		{"plain", errors.New("plain"), "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MessageOf(tt.err); got != tt.want {
				t.Errorf("MessageOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeSessionExpired, "AUTH"},
		{ErrCodeNetFailure, "NET"},
		{ErrCodeStateCorrupt, "STATE"},
		{ErrorCode("odd"), "odd"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.Category(); got != tt.want {
				t.Errorf("Category() = %q, want %q", got, tt.want)
			}
		})
	}
}
