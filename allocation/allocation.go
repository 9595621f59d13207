// Package allocation computes per-employee token amounts from a uniform value
// or a role table.
package allocation

import (
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/registry"
)

// DefaultRoleAmounts is the built-in role allocation table.
var DefaultRoleAmounts = map[registry.Role]float64{
	registry.RoleOperational: 100,
	registry.RoleDeveloper:   200,
	registry.RoleManager:     300,
	registry.RoleVP:          400,
	registry.RoleVIP:         500,
}

// DefaultAmount is allocated when a record has no role and no uniform amount
// was given.
const DefaultAmount = 100

// Allocate populates TokenAmount on every record and returns the new list
// together with the total allocated. Precedence per record: uniform amount
// (when non-nil) over roleAmounts[role] over the built-in role default over
// DefaultAmount. Deterministic for a given registry and role table.
func Allocate(employees []registry.Employee, uniform *float64, roleAmounts map[registry.Role]float64) ([]registry.Employee, float64, error) {
	if len(employees) == 0 {
		return nil, 0, ErrNoEmployees
	}

	allocated := make([]registry.Employee, len(employees))
	copy(allocated, employees)

	var total float64
	for i := range allocated {
		amount := amountFor(&allocated[i], uniform, roleAmounts)
		allocated[i].TokenAmount = &amount
		total += amount
	}

	return allocated, total, nil
}

func amountFor(emp *registry.Employee, uniform *float64, roleAmounts map[registry.Role]float64) float64 {
	if uniform != nil {
		return *uniform
	}
	if emp.Role != "" {
		if amount, ok := roleAmounts[emp.Role]; ok {
			return amount
		}
		if amount, ok := DefaultRoleAmounts[emp.Role]; ok {
			return amount
		}
	}
	return DefaultAmount
}
