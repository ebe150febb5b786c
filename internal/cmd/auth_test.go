package cmd

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/crossorg/hrconsole/internal/errors"
	"github.com/crossorg/hrconsole/internal/mockapi"
)

// TestLoginFlags tests that login has the expected flags
func TestLoginFlags(t *testing.T) {
	for _, name := range []string{"username", "password", "password-stdin"} {
		assert.NotNil(t, loginCmd.Flags().Lookup(name), "flag %q not found on login", name)
	}
	assert.Equal(t, "u", loginCmd.Flags().Lookup("username").Shorthand)
	assert.NotNil(t, whoamiCmd.Flags().Lookup("refresh"))
}

// consoleEnv runs commands against a mock backend with a private home.
type consoleEnv struct {
	t    *testing.T
	home string
	api  string
}

func newConsoleEnv(t *testing.T) *consoleEnv {
	t.Helper()
	backend, err := mockapi.New(mockapi.Options{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	ts := httptest.NewServer(backend.Handler())
	t.Cleanup(ts.Close)
	return &consoleEnv{t: t, home: t.TempDir(), api: ts.URL + "/api"}
}

// run executes the root command and returns stdout.
func (e *consoleEnv) run(args ...string) (string, error) {
	e.t.Helper()
	resetCommandFlags(e.t, rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(append([]string{"--home", e.home, "--api-url", e.api, "--no-color"}, args...))
	e.t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return stdout.String(), err
}

func TestLoginSessionIsShared(t *testing.T) {
	env := newConsoleEnv(t)

	out, err := env.run("whoami")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotLoggedIn))
	assert.Empty(t, out)

	out, err = env.run("login", "--format", "json", "-u", "hr1", "-p", "pwd123")
	require.NoError(t, err)
	assert.Contains(t, out, `"username": "hr1"`)
	assert.NotContains(t, out, "token")

	out, err = env.run("whoami", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "username: hr1")

	out, err = env.run("open", "/employees", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"records"`)

	_, err = env.run("open", "/companies")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRouteDenied))

	out, err = env.run("logout")
	require.NoError(t, err)
	assert.Equal(t, "已退出登录\n", out)

	out, err = env.run("logout")
	require.NoError(t, err)
	assert.Equal(t, "未登录\n", out)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	env := newConsoleEnv(t)

	_, err := env.run("login", "-u", "hr1", "-p", "wrong")
	require.Error(t, err)

	_, err = env.run("whoami")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotLoggedIn))
}

func TestLoginPasswordFromStdin(t *testing.T) {
	env := newConsoleEnv(t)

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader("admin123\n"))
	rootCmd.SetArgs([]string{"--home", env.home, "--api-url", env.api, "--no-color",
		"login", "-u", "admin", "--password-stdin", "--format", "json"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
		resetFlag(t, loginCmd, "password-stdin")
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, stdout.String(), `"username": "admin"`)
}

// resetCommandFlags returns every flag in the tree to its default. Commands
// are package globals, so values would otherwise carry over between runs.
func resetCommandFlags(t *testing.T, c *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			require.NoError(t, sv.Replace(nil))
		} else {
			require.NoError(t, f.Value.Set(f.DefValue))
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetCommandFlags(t, sub)
	}
}

// resetFlag restores a flag to its default so later commands in the same
// process do not inherit it.
func resetFlag(t *testing.T, c *cobra.Command, name string) {
	t.Helper()
	f := c.Flags().Lookup(name)
	require.NotNil(t, f)
	require.NoError(t, f.Value.Set(f.DefValue))
	f.Changed = false
}
