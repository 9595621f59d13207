package registry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monostate/Employees-Airdrop-Rewards-MCP/custody"
)

func TestParseEmployeeText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Entry
	}{
		{"emails only", "a@x.com\nb@x.com", []Entry{{Email: "a@x.com"}, {Email: "b@x.com"}}},
		{"names and emails", "Alice, a@x.com\nBob,b@x.com", []Entry{
			{Name: "Alice", Email: "a@x.com"},
			{Name: "Bob", Email: "b@x.com"},
		}},
		{"blank lines and whitespace", "\n  a@x.com  \n\n\tb@x.com\n\n", []Entry{
			{Email: "a@x.com"}, {Email: "b@x.com"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEmployeeText(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEmployeeText_Empty(t *testing.T) {
	for _, text := range []string{"", "\n\n", "   \n\t\n"} {
		_, err := ParseEmployeeText(text)
		assert.ErrorIs(t, err, ErrNoEmployees)
	}
}

func TestParseEmployeeText_InvalidEmail(t *testing.T) {
	for _, text := range []string{"not-an-email", "Alice, alice@nodot", "a@x.com\n@x.com"} {
		_, err := ParseEmployeeText(text)
		assert.ErrorIs(t, err, ErrInvalidEmail, text)
	}
}

func TestParseEmployeeText_Duplicate(t *testing.T) {
	_, err := ParseEmployeeText("a@x.com\nA@X.COM")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"developer", RoleDeveloper},
		{"Developer", RoleDeveloper},
		{"VP", RoleVP},
		{"vp", RoleVP},
		{"vip", RoleVIP},
		{" manager ", RoleManager},
		{"OPERATIONAL", RoleOperational},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseRole_Invalid(t *testing.T) {
	_, err := ParseRole("Intern")
	require.ErrorIs(t, err, ErrInvalidRole)
	for _, r := range ValidRoles {
		assert.Contains(t, err.Error(), string(r))
	}
}

func TestGenerate_OrderPreserved(t *testing.T) {
	provider := &custody.MockProvider{
		ProvisionWalletFn: func(_ context.Context, email string) (*custody.Wallet, error) {
			return &custody.Wallet{Email: email, Address: "addr-" + email}, nil
		},
	}

	entries := []Entry{
		{Name: "Alice", Email: "a@x.com"},
		{Email: "b@x.com"},
		{Name: "Carol", Email: "c@x.com"},
	}
	employees, err := Generate(context.Background(), entries, provider)
	require.NoError(t, err)
	require.Len(t, employees, 3)

	assert.Equal(t, "a@x.com", employees[0].Email)
	assert.Equal(t, "Alice", employees[0].Name)
	assert.Equal(t, "addr-a@x.com", employees[0].WalletAddress)
	assert.Equal(t, "addr-b@x.com", employees[1].WalletAddress)
	assert.Equal(t, "addr-c@x.com", employees[2].WalletAddress)
}

func TestGenerate_ProviderFailure(t *testing.T) {
	provider := &custody.MockProvider{
		ProvisionWalletFn: func(_ context.Context, email string) (*custody.Wallet, error) {
			if email == "b@x.com" {
				return nil, errors.New("custody down")
			}
			return &custody.Wallet{Email: email, Address: "addr"}, nil
		},
	}

	_, err := Generate(context.Background(), []Entry{{Email: "a@x.com"}, {Email: "b@x.com"}}, provider)
	require.ErrorIs(t, err, ErrProvisionFailed)
	assert.Contains(t, err.Error(), "b@x.com")
}

func TestGenerate_Empty(t *testing.T) {
	_, err := Generate(context.Background(), nil, custody.NewSimulatedProvider())
	assert.ErrorIs(t, err, ErrNoEmployees)
}

func TestImportRoles_MergesExisting(t *testing.T) {
	amount := 42.0
	employees := []Employee{
		{Email: "a@x.com", WalletAddress: "addr-a", TokenAmount: &amount},
		{Email: "b@x.com", WalletAddress: "addr-b"},
	}

	merged, err := ImportRoles(employees, []RoleRow{
		{Email: "A@X.COM", Name: "Alice", Role: "developer"},
		{Email: "b@x.com", Role: "manager"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice", merged[0].Name)
	assert.Equal(t, RoleDeveloper, merged[0].Role)
	assert.Equal(t, "addr-a", merged[0].WalletAddress, "wallet address untouched")
	require.NotNil(t, merged[0].TokenAmount)
	assert.Equal(t, 42.0, *merged[0].TokenAmount, "prior allocation untouched")
	assert.Equal(t, RoleManager, merged[1].Role)

	// Original slice must not be mutated.
	assert.Empty(t, employees[0].Name)
	assert.Empty(t, employees[0].Role)
}

func TestImportRoles_UnknownEmailNeverCreates(t *testing.T) {
	employees := []Employee{{Email: "a@x.com", WalletAddress: "addr-a"}}

	merged, err := ImportRoles(employees, []RoleRow{{Email: "ghost@x.com", Role: "developer"}})
	require.ErrorIs(t, err, ErrUnknownEmail)
	assert.Contains(t, err.Error(), "ghost@x.com")
	assert.Nil(t, merged)
	assert.Len(t, employees, 1)
}

func TestImportRoles_InvalidRole(t *testing.T) {
	employees := []Employee{{Email: "a@x.com"}}
	_, err := ImportRoles(employees, []RoleRow{{Email: "a@x.com", Role: "Intern"}})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestImportRoles_EmptyAndMissingEmail(t *testing.T) {
	employees := []Employee{{Email: "a@x.com"}}

	_, err := ImportRoles(employees, nil)
	assert.ErrorIs(t, err, ErrEmptyImport)

	_, err = ImportRoles(employees, []RoleRow{{Role: "developer"}})
	assert.ErrorIs(t, err, ErrMissingEmailField)
}

func TestReadRoleCSV(t *testing.T) {
	input := "email,name,role\na@x.com,Alice,developer\nb@x.com,,manager\n"
	rows, err := ReadRoleCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []RoleRow{
		{Email: "a@x.com", Name: "Alice", Role: "developer"},
		{Email: "b@x.com", Role: "manager"},
	}, rows)
}

func TestReadRoleCSV_HeaderVariants(t *testing.T) {
	input := "Role,EMAIL\ndeveloper,a@x.com\n"
	rows, err := ReadRoleCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a@x.com", rows[0].Email)
	assert.Equal(t, "developer", rows[0].Role)
}

func TestReadRoleCSV_MissingEmailColumn(t *testing.T) {
	_, err := ReadRoleCSV(strings.NewReader("name,role\nAlice,developer\n"))
	assert.ErrorIs(t, err, ErrMissingEmailField)
}

func TestReadRoleCSV_Empty(t *testing.T) {
	_, err := ReadRoleCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyImport)

	_, err = ReadRoleCSV(strings.NewReader("email,name,role\n"))
	assert.ErrorIs(t, err, ErrEmptyImport)
}
