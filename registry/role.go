package registry

import (
	"fmt"
	"strings"
)

// Role is an HR-defined category driving the default token allocation amount.
type Role string

const (
	RoleOperational Role = "operational"
	RoleDeveloper   Role = "developer"
	RoleManager     Role = "manager"
	RoleVP          Role = "VP"
	RoleVIP         Role = "VIP"
)

// ValidRoles lists every accepted role, in allocation-table order.
var ValidRoles = []Role{RoleOperational, RoleDeveloper, RoleManager, RoleVP, RoleVIP}

// ParseRole matches a role string case-insensitively against the fixed role
// set. The error names the valid roles so callers can correct their input.
func ParseRole(s string) (Role, error) {
	trimmed := strings.TrimSpace(s)
	for _, r := range ValidRoles {
		if strings.EqualFold(trimmed, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid roles: %s)", ErrInvalidRole, s, RoleList())
}

// RoleList returns the valid roles as a comma-separated string.
func RoleList() string {
	names := make([]string, len(ValidRoles))
	for i, r := range ValidRoles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
