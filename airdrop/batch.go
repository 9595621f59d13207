// Package airdrop executes the batched on-chain token distribution: it
// partitions recipients into bounded batches, provisions missing destination
// accounts inside each batch transaction, and submits batches sequentially,
// aborting on the first failure.
package airdrop

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/monostate/Employees-Airdrop-Rewards-MCP/solana"
)

// BatchSize is the maximum number of recipients per batch transaction, chosen
// to stay under the ledger's per-transaction size and instruction-count
// ceiling: each recipient contributes up to two instructions.
const BatchSize = 5

// defaultSubmitInterval paces sequential batch submissions to respect the
// RPC endpoint's rate limits.
const defaultSubmitInterval = 500 * time.Millisecond

// Recipient is one distribution target.
type Recipient struct {
	Email   string   `json:"email"`
	Address string   `json:"address"`
	Amount  *float64 `json:"amount,omitempty"` // tokens; nil falls back to Request.DefaultAmount
}

// Request describes one distribution run.
type Request struct {
	Mint          string      `json:"mint"`
	Decimals      uint8       `json:"decimals"`
	Sender        string      `json:"sender"`
	Recipients    []Recipient `json:"recipients"`
	DefaultAmount float64     `json:"default_amount"`
}

// BatchResult records the outcome of one batch.
type BatchResult struct {
	Index      int    `json:"index"`
	Recipients int    `json:"recipients"`
	TxID       string `json:"txid,omitempty"`
	Err        string `json:"error,omitempty"`
}

// Result is the bookkeeping for a whole run. Completed is true only when
// every batch succeeded.
type Result struct {
	RunID     string        `json:"run_id"`
	Batches   []BatchResult `json:"batches"`
	Completed bool          `json:"completed"`
}

// Distributor submits distribution runs against a ledger.
type Distributor struct {
	ledger  solana.LedgerService
	limiter *rate.Limiter
	audit   *AuditStore // nil disables the audit trail
}

// NewDistributor creates a Distributor. audit may be nil.
func NewDistributor(ledger solana.LedgerService, audit *AuditStore) *Distributor {
	return &Distributor{
		ledger:  ledger,
		limiter: rate.NewLimiter(rate.Every(defaultSubmitInterval), 1),
		audit:   audit,
	}
}

// SetSubmitInterval overrides the pacing between batch submissions.
func (d *Distributor) SetSubmitInterval(interval time.Duration) {
	d.limiter = rate.NewLimiter(rate.Every(interval), 1)
}

// Partition splits recipients into consecutive batches of at most BatchSize,
// preserving order. 13 recipients produce batches of sizes [5,5,3].
func Partition(recipients []Recipient) [][]Recipient {
	var batches [][]Recipient
	for start := 0; start < len(recipients); start += BatchSize {
		end := min(start+BatchSize, len(recipients))
		batches = append(batches, recipients[start:end])
	}
	return batches
}

// ScaleAmount converts a token amount to the mint's base units:
// amount * 10^decimals, rounded to the nearest unit.
func ScaleAmount(amount float64, decimals uint8) uint64 {
	return uint64(math.Round(amount * math.Pow10(int(decimals))))
}

// Distribute runs one distribution. Batches are submitted sequentially and
// each waits for confirmation before the next begins; the first failing batch
// aborts the run, its error recorded in the returned Result and wrapped in
// the returned error. The partial Result is returned alongside any error so
// callers can report how far the run got.
func (d *Distributor) Distribute(ctx context.Context, req Request) (*Result, error) {
	if req.Mint == "" || req.Sender == "" {
		return nil, fmt.Errorf("%w: mint and sender are required", ErrNilParam)
	}
	if len(req.Recipients) == 0 {
		return nil, ErrNoRecipients
	}

	// Source-account check happens once, not per batch.
	hasSource, err := d.ledger.HasTokenAccount(ctx, req.Sender, req.Mint)
	if err != nil {
		return nil, fmt.Errorf("%w: source account lookup: %w", ErrBatchFailed, err)
	}
	if !hasSource {
		return nil, fmt.Errorf("%w: %s", ErrNoSourceAccount, req.Sender)
	}

	result := &Result{RunID: uuid.NewString()}
	started := time.Now()

	for i, batch := range Partition(req.Recipients) {
		if err := d.limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("%w: batch %d: %w", ErrBatchFailed, i, err)
		}

		txid, err := d.submitBatch(ctx, req, batch)
		br := BatchResult{Index: i, Recipients: len(batch), TxID: txid}
		if err != nil {
			br.Err = err.Error()
			result.Batches = append(result.Batches, br)
			d.record(req, result, started)
			return result, fmt.Errorf("%w: batch %d: %w", ErrBatchFailed, i, err)
		}
		result.Batches = append(result.Batches, br)
	}

	result.Completed = true
	d.record(req, result, started)
	return result, nil
}

// submitBatch builds and submits one atomic batch transaction. Recipients
// without a destination token account get a create-account instruction ahead
// of their transfer, inside the same transaction.
func (d *Distributor) submitBatch(ctx context.Context, req Request, batch []Recipient) (string, error) {
	instructions := make([]solana.Instruction, 0, len(batch)*2)

	for _, rcpt := range batch {
		exists, err := d.ledger.HasTokenAccount(ctx, rcpt.Address, req.Mint)
		if err != nil {
			return "", fmt.Errorf("account lookup for %s: %w", rcpt.Address, err)
		}
		if !exists {
			instructions = append(instructions, solana.Instruction{
				Type:  solana.InstructionCreateAccount,
				Owner: rcpt.Address,
			})
		}

		amount := req.DefaultAmount
		if rcpt.Amount != nil {
			amount = *rcpt.Amount
		}
		instructions = append(instructions, solana.Instruction{
			Type:   solana.InstructionTransfer,
			Owner:  rcpt.Address,
			Amount: ScaleAmount(amount, req.Decimals),
		})
	}

	return d.ledger.SubmitTransfer(ctx, solana.TransferRequest{
		Mint:         req.Mint,
		Sender:       req.Sender,
		Instructions: instructions,
	})
}

// record writes the run to the audit trail. Audit failures are not allowed to
// fail a distribution that already happened on chain.
func (d *Distributor) record(req Request, result *Result, started time.Time) {
	if d.audit == nil {
		return
	}
	_ = d.audit.SaveRun(&RunRecord{
		ID:         result.RunID,
		Mint:       req.Mint,
		Sender:     req.Sender,
		Recipients: len(req.Recipients),
		Batches:    result.Batches,
		Completed:  result.Completed,
		StartedAt:  started,
		FinishedAt: time.Now(),
	})
}
