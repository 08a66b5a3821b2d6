package models

import (
	"fmt"
	"strings"
)

// Role selects which view of the family portfolio is active.
type Role string

const (
	RolePrimary Role = "primary"
	RoleHeir    Role = "heir"
	RoleAdvisor Role = "advisor"
)

// ValidRoles is the set of all valid roles.
var ValidRoles = []Role{
	RolePrimary,
	RoleHeir,
	RoleAdvisor,
}

// IsValid returns true if the role is recognized.
func (r Role) IsValid() bool {
	for i := range ValidRoles {
		if r == ValidRoles[i] {
			return true
		}
	}
	return false
}

// ParseRole converts a user-supplied label into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// UserProfile is read-only reference data for one role. Heir and advisor
// specific fields are empty for the other roles.
type UserProfile struct {
	Role              Role     `json:"role" toml:"role"`
	Name              string   `json:"name" toml:"name"`
	RoleLabel         string   `json:"role_label" toml:"role_label"`
	Avatar            string   `json:"avatar" toml:"avatar"`
	Age               int      `json:"age,omitempty" toml:"age"`
	Bio               string   `json:"bio" toml:"bio"`
	Interests         []string `json:"interests,omitempty" toml:"interests"`
	FinancialLiteracy string   `json:"financial_literacy,omitempty" toml:"financial_literacy"`
	Firm              string   `json:"firm,omitempty" toml:"firm"`
	Credentials       string   `json:"credentials,omitempty" toml:"credentials"`
}

// FirstName returns the first word of the profile name.
func (p UserProfile) FirstName() string {
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
