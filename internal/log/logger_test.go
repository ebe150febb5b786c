package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crossorg/hrconsole/internal/errors"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"info", LevelInfo},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{"text", FormatText},
		{"console", FormatText},
		{"", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultConfigWritesToStderr(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Output.Writer() != os.Stderr {
		t.Error("DefaultConfig should log to stderr")
	}
	if cfg.Level != LevelWarn {
		t.Errorf("DefaultConfig.Level = %v, want %v", cfg.Level, LevelWarn)
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Format: FormatJSON, Output: NewOutput(&buf)})

	logger.Debug("debug message")
	logger.Info("info message")
	if buf.Len() > 0 {
		t.Errorf("expected no output for debug/info at warn level, got: %s", buf.String())
	}

	logger.Warn("warn message")
	if buf.Len() == 0 {
		t.Error("expected output for warn message")
	}
}

func TestWithErrorConsoleError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: NewOutput(&buf)})

	err := errors.NewSessionExpiredError("登录已过期", 40100, 200)
	logger.WithError(fmt.Errorf("call: %w", err)).Error("request failed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, buf.String())
	}
	if entry["error_code"] != string(errors.ErrCodeSessionExpired) {
		t.Errorf("error_code = %v", entry["error_code"])
	}
	if entry["envelope_code"] != float64(40100) {
		t.Errorf("envelope_code = %v", entry["envelope_code"])
	}
}

func TestWithErrorNil(t *testing.T) {
	logger := Discard()
	if logger.WithError(nil) != logger {
		t.Error("WithError(nil) should return the same logger")
	}
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hrconsole.log")
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelInfo,
		Format: FormatText,
		Output: NewOutput(&buf),
		File:   FileConfig{Path: path, MaxSizeMB: 1},

		ServiceName:    "hrconsole",
		ServiceVersion: "1.4.0",
	})

	logger.WithComponent("test").Info("hello file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log file is not JSON: %v\n%s", err, data)
	}
	if entry["msg"] != "hello file" || entry["service"] != "hrconsole" || entry["version"] != "1.4.0" {
		t.Errorf("log file entry = %v", entry)
	}
	if !strings.Contains(buf.String(), "component=test") {
		t.Errorf("primary output missing entry: %s", buf.String())
	}
}

func TestCredentialsAreRedacted(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Format: FormatText, Output: NewOutput(&buf)})

	logger.Debug("login", "username", "hr1", "password", "pwd123", "Token", "eyJhbGciOi")
	logger.Debug("logout", "token", "")

	out := buf.String()
	if strings.Contains(out, "pwd123") || strings.Contains(out, "eyJhbGciOi") {
		t.Errorf("credentials leaked: %s", out)
	}
	if !strings.Contains(out, "username=hr1") || strings.Count(out, redacted) != 2 {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestFileOnlyGetsItsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hrconsole.log")
	logger := New(Config{
		Level:  LevelWarn,
		Format: FormatText,
		Output: NewOutput(&bytes.Buffer{}),
		File:   FileConfig{Path: path},
	})
	logger.Info("skipped")
	logger.Warn("kept")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if strings.Contains(string(data), "skipped") || !strings.Contains(string(data), "kept") {
		t.Errorf("log file = %s", data)
	}
}
