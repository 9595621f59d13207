package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monostate/Employees-Airdrop-Rewards-MCP/registry"
)

func amounts(employees []registry.Employee) []float64 {
	out := make([]float64, len(employees))
	for i, e := range employees {
		out[i] = *e.TokenAmount
	}
	return out
}

func TestAllocate_RoleDefaults(t *testing.T) {
	employees := []registry.Employee{
		{Email: "a@x.com", Role: registry.RoleDeveloper},
		{Email: "b@x.com", Role: registry.RoleManager},
	}

	allocated, total, err := Allocate(employees, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{200, 300}, amounts(allocated))
	assert.Equal(t, 500.0, total)
}

func TestAllocate_AllRoleDefaults(t *testing.T) {
	employees := []registry.Employee{
		{Email: "op@x.com", Role: registry.RoleOperational},
		{Email: "dev@x.com", Role: registry.RoleDeveloper},
		{Email: "mgr@x.com", Role: registry.RoleManager},
		{Email: "vp@x.com", Role: registry.RoleVP},
		{Email: "vip@x.com", Role: registry.RoleVIP},
		{Email: "none@x.com"},
	}

	allocated, total, err := Allocate(employees, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 200, 300, 400, 500, 100}, amounts(allocated))
	assert.Equal(t, 1600.0, total)
}

func TestAllocate_UniformWinsOverRole(t *testing.T) {
	uniform := 50.0
	employees := []registry.Employee{
		{Email: "a@x.com", Role: registry.RoleVIP},
		{Email: "b@x.com"},
	}

	allocated, total, err := Allocate(employees, &uniform, map[registry.Role]float64{registry.RoleVIP: 9999})
	require.NoError(t, err)
	assert.Equal(t, []float64{50, 50}, amounts(allocated))
	assert.Equal(t, 100.0, total)
}

func TestAllocate_RoleOverrides(t *testing.T) {
	employees := []registry.Employee{
		{Email: "a@x.com", Role: registry.RoleDeveloper},
		{Email: "b@x.com", Role: registry.RoleManager},
	}

	overrides := map[registry.Role]float64{registry.RoleDeveloper: 250}
	allocated, total, err := Allocate(employees, nil, overrides)
	require.NoError(t, err)
	assert.Equal(t, []float64{250, 300}, amounts(allocated), "override for developer, default for manager")
	assert.Equal(t, 550.0, total)
}

func TestAllocate_Deterministic(t *testing.T) {
	employees := []registry.Employee{
		{Email: "a@x.com", Role: registry.RoleDeveloper},
		{Email: "b@x.com", Role: registry.RoleVP},
		{Email: "c@x.com"},
	}

	first, totalFirst, err := Allocate(employees, nil, nil)
	require.NoError(t, err)
	second, totalSecond, err := Allocate(employees, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, amounts(first), amounts(second))
	assert.Equal(t, totalFirst, totalSecond)

	var sum float64
	for _, a := range amounts(first) {
		sum += a
	}
	assert.Equal(t, sum, totalFirst)
}

func TestAllocate_DoesNotMutateInput(t *testing.T) {
	employees := []registry.Employee{{Email: "a@x.com", Role: registry.RoleDeveloper}}
	_, _, err := Allocate(employees, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, employees[0].TokenAmount)
}

func TestAllocate_Empty(t *testing.T) {
	_, _, err := Allocate(nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoEmployees)
}
