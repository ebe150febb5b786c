package cmd

import (
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crossorg/hrconsole/internal/errors"
	"github.com/crossorg/hrconsole/internal/platform"
	"github.com/crossorg/hrconsole/internal/router"
	"github.com/crossorg/hrconsole/internal/session"
)

// TestSubcommands tests that every command group is registered
func TestSubcommands(t *testing.T) {
	want := map[string][]string{
		"company":      {"list", "show", "mine", "registrations", "approve", "apply"},
		"employee":     {"list", "show", "profiles", "me", "count"},
		"notification": {"list", "show", "unread", "read", "read-all"},
		"complaint":    {"list", "handle", "add"},
		"evaluation":   {"tasks", "mine", "create-quarterly"},
		"talent":       {"search", "show", "compare", "bookmarks", "bookmark", "unbookmark"},
		"config":       {"view", "edit", "get", "set", "path"},
		"mock":         {"serve"},
	}

	for group, subs := range want {
		parent, _, err := rootCmd.Find([]string{group})
		require.NoError(t, err, group)
		require.Equal(t, group, parent.Name())

		names := map[string]bool{}
		for _, c := range parent.Commands() {
			names[c.Name()] = true
		}
		for _, sub := range subs {
			assert.True(t, names[sub], "%s %s not registered", group, sub)
		}
	}

	for _, name := range []string{"login", "logout", "whoami", "open", "routes", "shell", "doctor", "version"} {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}
}

func TestAfterLogin(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{"/login?redirect=%2Femployees", "/employees"},
		{"/login?redirect=%2Femployees%3Fpage%3D2", "/employees?page=2"},
		{"/login", "/"},
		{"/login?redirect=https%3A%2F%2Fevil.example", "/"},
		{"/notifications", "/notifications"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, afterLogin(tt.current), tt.current)
	}
}

func TestRoutesTable(t *testing.T) {
	table := routesTable([]router.Route{
		{Path: "/login", Title: "登录"},
		{Path: "/notifications", Title: "消息通知", RequiresAuth: true},
		{Path: "/companies", Title: "公司管理", RequiresAuth: true, Roles: []session.Role{session.RoleAdmin}},
	})

	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"/login", "登录", "公开"}, table.Rows[0])
	assert.Equal(t, []string{"/notifications", "消息通知", "已登录用户"}, table.Rows[1])
	assert.Equal(t, []string{"/companies", "公司管理", "系统管理员"}, table.Rows[2])

	rows := table.Source.([]routeRow)
	assert.Equal(t, []string{"admin"}, rows[2].Roles)
	assert.True(t, rows[1].Login)
}

func TestStatusFlags(t *testing.T) {
	code, err := registrationStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, platform.RegistrationApproved, code)

	code, err = complaintStatus("rejected")
	require.NoError(t, err)
	assert.Equal(t, platform.ComplaintRejected, code)

	_, err = registrationStatus("done")
	assert.True(t, errors.HasCode(err, errors.ErrCodeAPIRequest))
	_, err = complaintStatus("")
	assert.Error(t, err)
}

func TestQuarterRequest(t *testing.T) {
	now := time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC)

	req, err := quarterRequest(0, 0, 0, now)
	require.NoError(t, err)
	assert.Equal(t, platform.QuarterlyTaskRequest{PeriodYear: 2026, PeriodQuarter: 3}, req)

	req, err = quarterRequest(2025, 4, 2, now)
	require.NoError(t, err)
	assert.Equal(t, platform.QuarterlyTaskRequest{DepartmentID: 2, PeriodYear: 2025, PeriodQuarter: 4}, req)

	_, err = quarterRequest(2025, 5, 0, now)
	assert.Error(t, err)
}

func TestPagingQuery(t *testing.T) {
	c := &cobra.Command{Use: "list"}
	addPagingFlags(c)
	c.Flags().String("name", "", "")
	c.Flags().Bool("unread", false, "")
	require.NoError(t, c.Flags().Parse([]string{"--page", "2", "--name", "张", "--unread"}))

	q := pagingQuery(c)
	setFlag(c, q, "name", "name")
	setBoolFlag(c, q, "unread", "unread")

	assert.Equal(t, url.Values{"page": {"2"}, "name": {"张"}, "unread": {"true"}}, q)
	assert.Equal(t, "/employees?name=%E5%BC%A0&page=2&unread=true", pagePath("/employees", q))
	assert.Equal(t, "/employees", pagePath("/employees", url.Values{}))
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-1", "abc"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestTalentLabel(t *testing.T) {
	assert.Equal(t, "张三", talentLabel(platform.Talent{Name: "张三"}))
	assert.Equal(t, "张三 · 后端工程师 · 4.5", talentLabel(platform.Talent{
		Name: "张三", LatestOccupation: "后端工程师", AverageScore: 4.5, EvaluationCount: 2,
	}))
}

func TestVersionCommand(t *testing.T) {
	env := newConsoleEnv(t)
	out, err := env.run("version")
	require.NoError(t, err)
	assert.Regexp(t, `^hrconsole \S+\n$`, out)

	out, err = env.run("version", "--backend", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "backend "+env.api)

	out, err = env.run("version", "--backend", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"client"`)
	assert.Contains(t, out, `"url": "`+env.api+`"`)
	assert.NotContains(t, out, `"error"`)
}

func TestDoctor(t *testing.T) {
	env := newConsoleEnv(t)

	out, err := env.run("doctor", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "api-backend")
	assert.Contains(t, out, "not logged in")
	assert.Contains(t, out, "overall: degraded")

	_, err = env.run("login", "-u", "user1", "-p", "pwd123")
	require.NoError(t, err)
	out, err = env.run("doctor", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "healthy"`)
	assert.Contains(t, out, `"username": "user1"`)
}

func TestDisplayAddr(t *testing.T) {
	tests := []struct {
		addr net.Addr
		want string
	}{
		{&net.TCPAddr{IP: net.IPv4zero, Port: 8123}, "localhost:8123"},
		{&net.TCPAddr{IP: net.IPv6unspecified, Port: 8123}, "localhost:8123"},
		{&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9000}, "127.0.0.1:9000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, displayAddr(tt.addr))
	}
}
