package session

import (
	"encoding/json"
	"slices"
)

// Snapshot is the identity of the logged-in user. A zero Snapshot is logged
// out. Snapshots are values; the store swaps whole snapshots.
type Snapshot struct {
	UserID    int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	Nickname  string `json:"nickname,omitempty"`
	Role      Role   `json:"userRole"`
	CompanyID int64  `json:"companyId,omitempty"`
	Token     string `json:"token,omitempty"`

	LoggedIn bool `json:"-"`
}

// DisplayName returns the nickname, falling back to the username.
func (s Snapshot) DisplayName() string {
	if s.Nickname != "" {
		return s.Nickname
	}
	return s.Username
}

func (s Snapshot) encode() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeSnapshot(raw string) (Snapshot, error) {
	var persisted struct {
		Snapshot
		Role string `json:"userRole"`
	}
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		return Snapshot{}, err
	}
	s := persisted.Snapshot
	s.Role = ParseRole(persisted.Role)
	s.LoggedIn = true
	return s, nil
}

// HasRole reports whether s is logged in with one of roles.
func HasRole(s Snapshot, roles ...Role) bool {
	return s.LoggedIn && slices.Contains(roles, s.Role)
}

func IsSystemAdmin(s Snapshot) bool { return HasRole(s, RoleAdmin) }

func IsCompanyAdmin(s Snapshot) bool { return HasRole(s, RoleCompanyAdmin) }

func IsHR(s Snapshot) bool { return HasRole(s, RoleHR) }

func IsEmployee(s Snapshot) bool { return HasRole(s, RoleEmployee) }

// CanManageUsers gates user administration.
func CanManageUsers(s Snapshot) bool { return IsSystemAdmin(s) }

// CanAddHR gates creating HR accounts.
func CanAddHR(s Snapshot) bool { return IsSystemAdmin(s) || IsCompanyAdmin(s) }

// CanChangePassword is open to every logged-in user.
func CanChangePassword(s Snapshot) bool { return s.LoggedIn }

func CanViewUserList(s Snapshot) bool { return IsSystemAdmin(s) }

func CanViewCompanyHRs(s Snapshot) bool { return IsCompanyAdmin(s) || IsSystemAdmin(s) }
