package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func setBuildVars(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() {
		Version, Commit, Date = origVersion, origCommit, origDate
	})
}

func TestGetInfo(t *testing.T) {
	setBuildVars(t, "1.0.0", "abc123def456", "2024-01-01T12:00:00Z")

	info := GetInfo()

	if info.Version != "1.0.0" {
		t.Errorf("GetInfo().Version = %v, want 1.0.0", info.Version)
	}
	if info.Commit != "abc123def456" {
		t.Errorf("GetInfo().Commit = %v, want abc123def456", info.Commit)
	}
	if info.Date != "2024-01-01T12:00:00Z" {
		t.Errorf("GetInfo().Date = %v, want 2024-01-01T12:00:00Z", info.Date)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GetInfo().GoVersion = %v, want %v", info.GoVersion, runtime.Version())
	}
	if want := runtime.GOOS + "/" + runtime.GOARCH; info.Platform != want {
		t.Errorf("GetInfo().Platform = %v, want %v", info.Platform, want)
	}
}

func TestWithBuildSettings(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/crossorg/hrconsole", Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-03-02T10:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name string
		in   Info
		want Info
	}{
		{
			name: "unset values come from the binary",
			in:   Info{Version: "dev", Commit: "unknown", Date: "unknown"},
			want: Info{Version: "v0.3.1", Commit: "0123456789abcdef", Date: "2026-03-02T10:00:00Z", Modified: true},
		},
		{
			name: "ldflags win",
			in:   Info{Version: "1.4.0", Commit: "feedbeef", Date: "2026-01-01"},
			want: Info{Version: "1.4.0", Commit: "feedbeef", Date: "2026-01-01", Modified: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.withBuildSettings(bi); got != tt.want {
				t.Errorf("withBuildSettings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWithBuildSettingsDevelBuild(t *testing.T) {
	bi := &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}
	got := Info{Version: "dev", Commit: "unknown", Date: "unknown"}.withBuildSettings(bi)
	if got.Version != "dev" || got.Commit != "unknown" || got.Modified {
		t.Errorf("withBuildSettings() = %+v, want dev build untouched", got)
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want []string
	}{
		{
			name: "release",
			info: Info{Version: "1.0.0", Commit: "abc123def456", Date: "2024-01-01", GoVersion: "go1.24.6", Platform: "linux/amd64"},
			want: []string{"hrconsole 1.0.0", "(abc123de)", "built 2024-01-01", "with go1.24.6", "for linux/amd64"},
		},
		{
			name: "dirty tree",
			info: Info{Version: "dev", Commit: "abc123", Modified: true, Platform: "darwin/arm64"},
			want: []string{"(abc123-dirty)", "darwin/arm64"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.info.String()
			for _, substr := range tt.want {
				if !strings.Contains(got, substr) {
					t.Errorf("Info.String() = %v, missing %v", got, substr)
				}
			}
		})
	}
}

func TestDefaultValues(t *testing.T) {
	info := GetInfo()
	for field, v := range map[string]string{
		"Version":   info.Version,
		"Commit":    info.Commit,
		"Date":      info.Date,
		"GoVersion": info.GoVersion,
		"Platform":  info.Platform,
	} {
		if v == "" {
			t.Errorf("GetInfo().%s is empty", field)
		}
	}
}

func TestShortCommit(t *testing.T) {
	tests := []struct {
		commit string
		want   string
	}{
		{"abc123def456", "abc123de"},
		{"abc123", "abc123"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := (Info{Commit: tt.commit}).ShortCommit(); got != tt.want {
			t.Errorf("ShortCommit(%q) = %q, want %q", tt.commit, got, tt.want)
		}
	}
}

func TestUserAgent(t *testing.T) {
	info := Info{Version: "1.2.0", Platform: "linux/amd64"}
	if got, want := info.UserAgent(), "hrconsole/1.2.0 (linux/amd64)"; got != want {
		t.Errorf("UserAgent() = %q, want %q", got, want)
	}
}
