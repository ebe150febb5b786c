package session

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw  string
		want Role
	}{
		{"admin", RoleAdmin},
		{"company_admin", RoleCompanyAdmin},
		{"employee_admin", RoleCompanyAdmin},
		{"companyAdmin", RoleCompanyAdmin},
		{"hr", RoleHR},
		{"employee", RoleEmployee},
		{"user", RoleEmployee},
		{"", RoleEmployee},
		{"superuser", RoleEmployee},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := ParseRole(tt.raw); got != tt.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRolePredicates(t *testing.T) {
	admin := Snapshot{Role: RoleAdmin, LoggedIn: true}
	companyAdmin := Snapshot{Role: RoleCompanyAdmin, LoggedIn: true}
	hr := Snapshot{Role: RoleHR, LoggedIn: true}
	employee := Snapshot{Role: RoleEmployee, LoggedIn: true}
	loggedOut := Snapshot{Role: RoleAdmin}

	tests := []struct {
		name string
		fn   func(Snapshot) bool
		want map[string]bool
	}{
		{"CanManageUsers", CanManageUsers, map[string]bool{"admin": true}},
		{"CanAddHR", CanAddHR, map[string]bool{"admin": true, "company_admin": true}},
		{"CanViewUserList", CanViewUserList, map[string]bool{"admin": true}},
		{"CanViewCompanyHRs", CanViewCompanyHRs, map[string]bool{"admin": true, "company_admin": true}},
		{"CanChangePassword", CanChangePassword, map[string]bool{"admin": true, "company_admin": true, "hr": true, "employee": true}},
		{"IsHR", IsHR, map[string]bool{"hr": true}},
		{"IsEmployee", IsEmployee, map[string]bool{"employee": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range []Snapshot{admin, companyAdmin, hr, employee} {
				if got := tt.fn(s); got != tt.want[string(s.Role)] {
					t.Errorf("%s(%s) = %v, want %v", tt.name, s.Role, got, !got)
				}
			}
			if tt.fn(loggedOut) {
				t.Errorf("%s should be false when logged out", tt.name)
			}
		})
	}
}

func TestHasRoleRequiresLogin(t *testing.T) {
	s := Snapshot{Role: RoleHR}
	if HasRole(s, RoleHR) {
		t.Error("HasRole should be false for a logged-out snapshot")
	}
	s.LoggedIn = true
	if !HasRole(s, RoleAdmin, RoleHR) {
		t.Error("HasRole should match any listed role")
	}
}

func TestDisplayName(t *testing.T) {
	if got := (Snapshot{Username: "hr1"}).DisplayName(); got != "hr1" {
		t.Errorf("DisplayName() = %q, want hr1", got)
	}
	if got := (Snapshot{Username: "hr1", Nickname: "HR员工"}).DisplayName(); got != "HR员工" {
		t.Errorf("DisplayName() = %q, want HR员工", got)
	}
}
