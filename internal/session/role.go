package session

import "strings"

// Role is a normalised user role.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleCompanyAdmin Role = "company_admin"
	RoleHR           Role = "hr"
	RoleEmployee     Role = "employee"
)

// Roles lists every role, most privileged first.
var Roles = []Role{RoleAdmin, RoleCompanyAdmin, RoleHR, RoleEmployee}

// ParseRole maps a backend role string onto a Role. The backend has used
// several spellings for company administrators and "user" for employees;
// anything unrecognised is treated as an employee.
func ParseRole(raw string) Role {
	switch strings.TrimSpace(raw) {
	case "admin":
		return RoleAdmin
	case "company_admin", "employee_admin", "companyAdmin":
		return RoleCompanyAdmin
	case "hr":
		return RoleHR
	default:
		return RoleEmployee
	}
}

// Label returns a human readable role name.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "系统管理员"
	case RoleCompanyAdmin:
		return "公司管理员"
	case RoleHR:
		return "HR"
	default:
		return "员工"
	}
}
