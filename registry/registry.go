package registry

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/monostate/Employees-Airdrop-Rewards-MCP/custody"
)

// maxConcurrentProvisions bounds in-flight custody calls during generation.
const maxConcurrentProvisions = 8

// Generate provisions a custodial wallet for every entry and returns the new
// employee list in entry order. Provisioning calls run concurrently (each is
// independent) and are joined before the list is returned; any failure fails
// the whole generation and no partial list is produced.
func Generate(ctx context.Context, entries []Entry, provider custody.Provider) ([]Employee, error) {
	if len(entries) == 0 {
		return nil, ErrNoEmployees
	}

	employees := make([]Employee, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProvisions)

	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			wallet, err := provider.ProvisionWallet(ctx, entry.Email)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrProvisionFailed, entry.Email, err)
			}
			employees[i] = Employee{
				Email:         entry.Email,
				Name:          entry.Name,
				WalletAddress: wallet.Address,
				Simulated:     wallet.Simulated,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return employees, nil
}

// RoleRow is one row of a role import (typically from CSV).
type RoleRow struct {
	Email string
	Name  string
	Role  string // raw value, validated against the role set during import
}

// ImportRoles merges name and role data into an existing employee list and
// returns the merged copy. Every row's email must already exist in the list;
// import never creates records. WalletAddress and any previously allocated
// TokenAmount are left untouched.
func ImportRoles(employees []Employee, rows []RoleRow) ([]Employee, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyImport
	}

	merged := make([]Employee, len(employees))
	copy(merged, employees)

	index := make(map[string]int, len(merged))
	for i, emp := range merged {
		index[strings.ToLower(emp.Email)] = i
	}

	for _, row := range rows {
		email := strings.TrimSpace(row.Email)
		if email == "" {
			return nil, ErrMissingEmailField
		}

		i, ok := index[strings.ToLower(email)]
		if !ok {
			return nil, wrapEmail(ErrUnknownEmail, email)
		}

		if name := strings.TrimSpace(row.Name); name != "" {
			merged[i].Name = name
		}
		if strings.TrimSpace(row.Role) != "" {
			role, err := ParseRole(row.Role)
			if err != nil {
				return nil, err
			}
			merged[i].Role = role
		}
	}

	return merged, nil
}

// FindByEmail returns the index of the employee with the given email, or -1.
func FindByEmail(employees []Employee, email string) int {
	for i := range employees {
		if strings.EqualFold(employees[i].Email, email) {
			return i
		}
	}
	return -1
}

func wrapEmail(sentinel error, email string) error {
	return fmt.Errorf("%w: %q", sentinel, email)
}
