package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/monostate/Employees-Airdrop-Rewards-MCP/allocation"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/custody"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/fees"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/registry"
)

// GenerateWallets parses employee lines ("name, email" or bare email, one per
// line), provisions a custodial wallet for each, and replaces the session's
// employee list. Precondition: a wallet is connected. If the live provider
// fails, generation retries against the simulated provider so the session can
// continue rehearsing the flow.
func (o *Orchestrator) GenerateWallets(ctx context.Context, text, apiKey string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.wallet == nil {
		return "", preconditionf("no wallet connected; call connect_wallet first")
	}

	entries, err := registry.ParseEmployeeText(text)
	if err != nil {
		return "", classify(err)
	}

	provider, err := o.custodyProvider(apiKey)
	if err != nil {
		o.degrade("generate_wallets", err)
		provider = custody.NewSimulatedProvider()
	}

	employees, err := registry.Generate(ctx, entries, provider)
	if err != nil {
		if errors.Is(err, registry.ErrProvisionFailed) {
			o.degrade("generate_wallets", err)
			employees, err = registry.Generate(ctx, entries, custody.NewSimulatedProvider())
		}
		if err != nil {
			return "", classify(err)
		}
	}

	o.employees = employees

	simulated := 0
	for i := range employees {
		if employees[i].Simulated {
			simulated++
		}
	}

	msg := fmt.Sprintf("Generated %d employee wallets", len(employees))
	if simulated > 0 {
		msg += fmt.Sprintf(" (%d simulated)", simulated)
	}
	return msg, nil
}

// ImportCSV reads a role CSV (header must include an email column; role and
// name columns are optional) and merges roles and names into existing
// employee records. The import never creates employees: a row for an email
// absent from the registry is a validation error, which also covers imports
// before any wallets exist.
func (o *Orchestrator) ImportCSV(ctx context.Context, path string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	rows, err := registry.ReadRoleCSVFile(path)
	if err != nil {
		return "", classify(err)
	}

	merged, err := registry.ImportRoles(o.employees, rows)
	if err != nil {
		return "", classify(err)
	}
	o.employees = merged

	return fmt.Sprintf("Imported roles for %d employees from %s", len(rows), path), nil
}

// CalculateAmounts assigns a token amount to every employee. A uniform amount
// overrides everything; otherwise per-role overrides apply, then built-in role
// defaults, then the flat default for employees without a role. The reply
// carries advisory warnings when no token exists yet or the total exceeds the
// token supply; neither aborts the call.
func (o *Orchestrator) CalculateAmounts(ctx context.Context, uniform *float64, roleAmounts map[string]float64) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.employees) == 0 {
		return "", preconditionf("no employees registered; call generate_wallets first")
	}

	overrides := make(map[registry.Role]float64, len(roleAmounts))
	for name, amount := range roleAmounts {
		role, err := registry.ParseRole(name)
		if err != nil {
			return "", classify(err)
		}
		if amount < 0 {
			return "", validationf("amount for role %s must not be negative", role)
		}
		overrides[role] = amount
	}
	if uniform != nil && *uniform <= 0 {
		return "", validationf("uniform amount must be positive")
	}

	allocated, total, err := allocation.Allocate(o.employees, uniform, overrides)
	if err != nil {
		return "", classify(err)
	}
	o.employees = allocated

	var b strings.Builder
	fmt.Fprintf(&b, "Allocated %.4f tokens across %d employees", total, len(allocated))
	if o.token == nil {
		b.WriteString("\nWarning: no token created yet; amounts will apply to the token once created")
	} else if total > float64(o.token.Supply) {
		fmt.Fprintf(&b, "\nWarning: total allocation %.4f exceeds token supply %d", total, o.token.Supply)
	}
	return b.String(), nil
}

// CalculateFees estimates the network fees for distributing to the current
// employee list. Preconditions: employees registered and a wallet connected
// (the estimate is compared against the wallet balance).
func (o *Orchestrator) CalculateFees(ctx context.Context) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.employees) == 0 {
		return "", preconditionf("no employees registered; call generate_wallets first")
	}
	if o.wallet == nil {
		return "", preconditionf("no wallet connected; call connect_wallet first")
	}

	est := fees.EstimateFees(len(o.employees))

	var b strings.Builder
	fmt.Fprintf(&b, "Estimated fees for %d recipients:\n", len(o.employees))
	fmt.Fprintf(&b, "  account creation: %.9f SOL\n", est.AccountCreationFee)
	fmt.Fprintf(&b, "  transaction:      %.9f SOL\n", est.TransactionFee)
	fmt.Fprintf(&b, "  total:            %.9f SOL", est.TotalFee)
	if o.wallet.SolBalance < est.TotalFee {
		fmt.Fprintf(&b, "\nWarning: wallet balance %.9f SOL does not cover the estimated fees", o.wallet.SolBalance)
	}
	return b.String(), nil
}
