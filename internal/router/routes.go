// Package router maps console paths to views and decides, on every
// navigation, whether the current session may open them.
package router

import (
	"slices"
	"strings"

	"github.com/crossorg/hrconsole/internal/session"
)

// Well-known paths.
const (
	PathLogin = "/login"
	PathHome  = "/home"
)

// Route describes one console view.
type Route struct {
	Path         string
	Name         string
	Title        string
	RequiresAuth bool
	// Roles restricts the route; empty means any logged-in user.
	Roles []session.Role
}

// Public reports whether the route is reachable without a session.
func (r Route) Public() bool {
	return !r.RequiresAuth && len(r.Roles) == 0
}

// Allows reports whether role may open the route.
func (r Route) Allows(role session.Role) bool {
	return len(r.Roles) == 0 || slices.Contains(r.Roles, role)
}

var (
	staff      = []session.Role{session.RoleAdmin, session.RoleCompanyAdmin, session.RoleHR}
	employees  = []session.Role{session.RoleEmployee}
	adminsOnly = []session.Role{session.RoleAdmin}
)

// DefaultRoutes is the console route table.
var DefaultRoutes = []Route{
	{Path: "/register-company", Name: "companyRegistrationApply", Title: "企业注册申请"},
	{Path: "/login", Name: "login", Title: "登录"},
	{Path: "/diagnostic", Name: "diagnostic", Title: "连接诊断"},
	{Path: "/", Name: "home", Title: "首页", RequiresAuth: true},
	{Path: "/home", Name: "homePath", Title: "首页", RequiresAuth: true},
	{Path: "/profile", Name: "profile", Title: "个人中心", RequiresAuth: true},
	{Path: "/about", Name: "about", Title: "关于", RequiresAuth: true},
	{Path: "/users", Name: "userManagement", Title: "用户管理", RequiresAuth: true,
		Roles: []session.Role{session.RoleAdmin, session.RoleCompanyAdmin}},
	{Path: "/companies", Name: "companyManagement", Title: "公司管理", RequiresAuth: true, Roles: adminsOnly},
	{Path: "/companies/:id", Name: "companyDetail", Title: "公司详情", RequiresAuth: true, Roles: staff},
	{Path: "/employees/:employeeId/profile", Name: "employeeProfile", Title: "员工档案", RequiresAuth: true},
	{Path: "/employees", Name: "employeeManagement", Title: "员工管理", RequiresAuth: true, Roles: staff},
	{Path: "/employees/:id/detail", Name: "employeeDetail", Title: "员工详情", RequiresAuth: true, Roles: staff},
	{Path: "/departments/:id", Name: "departmentDetail", Title: "部门详情", RequiresAuth: true, Roles: staff},
	{Path: "/my-company", Name: "myCompany", Title: "我的公司", RequiresAuth: true, Roles: employees},
	{Path: "/my-profile", Name: "myProfile", Title: "我的档案", RequiresAuth: true, Roles: employees},
	{Path: "/update-profile", Name: "updateProfile", Title: "更新档案", RequiresAuth: true, Roles: employees},
	{Path: "/evaluation/tasks", Name: "evaluationTasks", Title: "评价任务", RequiresAuth: true,
		Roles: []session.Role{session.RoleHR, session.RoleEmployee}},
	{Path: "/evaluation/my", Name: "myEvaluation", Title: "我的评价", RequiresAuth: true, Roles: employees},
	{Path: "/evaluation/create-quarterly", Name: "createQuarterlyEvaluation", Title: "创建季度评价", RequiresAuth: true,
		Roles: []session.Role{session.RoleEmployee, session.RoleHR, session.RoleAdmin}},
	{Path: "/notifications", Name: "notificationList", Title: "消息通知", RequiresAuth: true},
	{Path: "/notifications/:id", Name: "notificationDetail", Title: "通知详情", RequiresAuth: true},
	{Path: "/complaints/management", Name: "complaintManagement", Title: "投诉管理", RequiresAuth: true, Roles: adminsOnly},
	{Path: "/company/registration/requests", Name: "companyRegistrationApproval", Title: "企业注册审批", RequiresAuth: true, Roles: adminsOnly},
	{Path: "/talent-market", Name: "talentMarket", Title: "人才市场", RequiresAuth: true, Roles: staff},
	{Path: "/talent-market/detail/:employeeId", Name: "talentMarketDetail", Title: "人才详情", RequiresAuth: true, Roles: staff},
	{Path: "/talent-market/compare", Name: "talentCompare", Title: "人才对比", RequiresAuth: true, Roles: staff},
}

// Table matches paths against routes in declaration order.
type Table struct {
	routes   []Route
	segments [][]string
}

// NewTable compiles routes.
func NewTable(routes []Route) *Table {
	t := &Table{routes: slices.Clone(routes)}
	for _, r := range t.routes {
		t.segments = append(t.segments, split(r.Path))
	}
	return t
}

// Routes returns the routes in declaration order.
func (t *Table) Routes() []Route {
	return slices.Clone(t.routes)
}

// Match finds the route for path (query string ignored) and extracts its
// :params.
func (t *Table) Match(path string) (Route, map[string]string, bool) {
	parts := split(stripQuery(path))
	for i, pattern := range t.segments {
		if params, ok := matchSegments(pattern, parts); ok {
			return t.routes[i], params, true
		}
	}
	return Route{}, nil, false
}

// Lookup returns the route with the given name.
func (t *Table) Lookup(name string) (Route, bool) {
	for _, r := range t.routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

func matchSegments(pattern, parts []string) (map[string]string, bool) {
	if len(pattern) != len(parts) {
		return nil, false
	}
	var params map[string]string
	for i, seg := range pattern {
		if strings.HasPrefix(seg, ":") {
			if parts[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[seg[1:]] = parts[i]
			continue
		}
		if seg != parts[i] {
			return nil, false
		}
	}
	return params, true
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func stripQuery(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		return path[:i]
	}
	return path
}

// Normalize cleans a user-typed path: leading slash, no trailing slash.
func Normalize(path string) string {
	p := stripQuery(path)
	rest := path[len(p):]
	p = "/" + strings.Trim(strings.TrimSpace(p), "/")
	return p + rest
}
