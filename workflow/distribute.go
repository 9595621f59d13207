package workflow

import (
	"context"
	"fmt"

	"github.com/monostate/Employees-Airdrop-Rewards-MCP/airdrop"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/metrics"
)

// StartAirdrop runs the batched on-chain distribution to every registered
// employee. Preconditions: employees registered, wallet connected, token
// created, and every employee has an allocated amount. Distribution failures
// are real failures: the session never degrades to simulation here, and the
// returned message names how far the run got.
func (o *Orchestrator) StartAirdrop(ctx context.Context) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.employees) == 0 {
		return "", preconditionf("no employees registered; call generate_wallets first")
	}
	if o.wallet == nil {
		return "", preconditionf("no wallet connected; call connect_wallet first")
	}
	if o.token == nil {
		return "", preconditionf("no token created; call create_token first")
	}
	for i := range o.employees {
		if o.employees[i].TokenAmount == nil {
			return "", preconditionf("employee %s has no allocated amount; call calculate_amounts first", o.employees[i].Email)
		}
	}

	recipients := make([]airdrop.Recipient, len(o.employees))
	for i, emp := range o.employees {
		recipients[i] = airdrop.Recipient{
			Email:   emp.Email,
			Address: emp.WalletAddress,
			Amount:  emp.TokenAmount,
		}
	}

	dist := airdrop.NewDistributor(o.activeLedger(), o.audit)
	if o.submitInterval > 0 {
		dist.SetSubmitInterval(o.submitInterval)
	}

	o.airdropStatus.Started = true

	result, err := dist.Distribute(ctx, airdrop.Request{
		Mint:          o.token.MintAddress,
		Decimals:      o.token.Decimals,
		Sender:        o.wallet.PublicKey,
		Recipients:    recipients,
		DefaultAmount: DefaultDistributionAmount,
	})
	if err != nil {
		if result != nil {
			ok := completedBatches(result)
			metrics.ObserveBatches(ok, len(result.Batches)-ok)
			o.airdropStatus.RunID = result.RunID
			succeeded, failed := tally(result, len(recipients))
			o.airdropStatus.Successful = succeeded
			o.airdropStatus.Failed = failed
			return "", executionf("distribution aborted after %d of %d batches: %v",
				completedBatches(result), len(airdrop.Partition(recipients)), err)
		}
		return "", classify(err)
	}

	metrics.ObserveBatches(len(result.Batches), 0)
	o.airdropStatus.Completed = true
	o.airdropStatus.Successful = len(recipients)
	o.airdropStatus.Failed = 0
	o.airdropStatus.RunID = result.RunID

	return fmt.Sprintf("Distributed %s to %d employees in %d batches (run %s)%s",
		o.token.Symbol, len(recipients), len(result.Batches), result.RunID, simNote(o.degraded)), nil
}

// tally counts recipients reached and missed from a partial run.
func tally(result *airdrop.Result, total int) (succeeded, failed int) {
	for _, b := range result.Batches {
		if b.Err == "" {
			succeeded += b.Recipients
		}
	}
	return succeeded, total - succeeded
}

// completedBatches counts the batches that were confirmed before the abort.
func completedBatches(result *airdrop.Result) int {
	n := 0
	for _, b := range result.Batches {
		if b.Err == "" {
			n++
		}
	}
	return n
}
