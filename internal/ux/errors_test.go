package ux

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	cerrors "github.com/crossorg/hrconsole/internal/errors"
)

func TestErrorWithSuggestion(t *testing.T) {
	base := errors.New("test error")

	if got := (&ErrorWithSuggestion{Err: base, Suggestion: "do this"}).Error(); got != "test error\n\n💡 Suggestion: do this" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&ErrorWithSuggestion{Err: base}).Error(); got != "test error" {
		t.Errorf("Error() without suggestion = %q", got)
	}
	if !errors.Is(NewErrorWithSuggestion(base, "x"), base) {
		t.Error("wrapped error must unwrap to the original")
	}
	if NewErrorWithSuggestion(nil, "x") != nil {
		t.Error("NewErrorWithSuggestion(nil) should be nil")
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string // substring, "" for no hint
	}{
		{"network failure", cerrors.New(cerrors.ErrCodeNetFailure, "网络请求失败"), "hrconsole mock serve"},
		{"timeout", cerrors.New(cerrors.ErrCodeNetTimeout, "请求超时，请检查网络连接"), "api.timeout"},
		{"session expired", cerrors.NewSessionExpiredError("登录已过期，请重新登录", 40100, 200), "hrconsole login"},
		{"route denied", cerrors.New(cerrors.ErrCodeRouteDenied, "denied"), "hrconsole routes"},
		{"unknown route", cerrors.NewRouteNotFoundError("/nowhere"), "hrconsole routes"},
		{"state write", cerrors.New(cerrors.ErrCodeStateWriteFailed, "write failed"), "storage.dir"},
		{"business without permission", cerrors.NewBusinessError("无权限", 40101, false), "company administrator"},
		{"business without a hint", cerrors.NewBusinessError("公司名称已存在", 1, false), ""},
		{"wrapped console error", fmt.Errorf("listing: %w", cerrors.New(cerrors.ErrCodeNetTimeout, "timeout")), "api.timeout"},
		{"plain connection refused", errors.New("dial tcp 127.0.0.1:8123: connect: connection refused"), "api.base_url"},
		{"port in use", errors.New("listen tcp :8123: bind: address already in use"), "mock.addr"},
		{"unrecognised", errors.New("something odd"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hint(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("Hint() = %q, want none", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Hint() = %q, want mention of %q", got, tt.want)
			}
		})
	}
}

func TestEnhanceError(t *testing.T) {
	if EnhanceError(nil) != nil {
		t.Error("EnhanceError(nil) should be nil")
	}

	plain := errors.New("something odd")
	if EnhanceError(plain) != plain {
		t.Error("an error without a hint must be returned unchanged")
	}

	withOwn := cerrors.NewNotLoggedInError()
	if EnhanceError(withOwn) != error(withOwn) {
		t.Error("errors that carry suggestions must not be wrapped")
	}

	once := EnhanceError(cerrors.New(cerrors.ErrCodeNetFailure, "网络请求失败"))
	if EnhanceError(once) != once {
		t.Error("an enhanced error must not be enhanced twice")
	}
	var ews *ErrorWithSuggestion
	if !errors.As(once, &ews) || !cerrors.HasCode(once, cerrors.ErrCodeNetFailure) {
		t.Errorf("EnhanceError() = %T, want a wrapper keeping the code", once)
	}
}

func TestFormatError(t *testing.T) {
	if FormatError(nil, "saving configuration") != nil {
		t.Error("FormatError(nil) should be nil")
	}

	err := FormatError(errors.New("dial tcp: connection refused"), "listing employees")
	msg := err.Error()
	for _, want := range []string{"listing employees: ", "connection refused", "api.base_url"} {
		if !strings.Contains(msg, want) {
			t.Errorf("FormatError() = %q, missing %q", msg, want)
		}
	}

	if got := FormatError(errors.New("boom"), "").Error(); got != "boom" {
		t.Errorf("FormatError() without context = %q", got)
	}
}
