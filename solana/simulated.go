package solana

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/mr-tron/base58"
)

// SimulatedLedger is an in-memory ledger for rehearsing the workflow without
// live RPC access. Balances, mints and token accounts behave consistently
// within a process; every result is clearly labeled simulated.
type SimulatedLedger struct {
	mu       sync.Mutex
	balances map[string]float64       // address → SOL
	accounts map[string]bool          // owner|mint → token account exists
	mints    map[string]CreateMintRequest
	seq      uint64
}

// NewSimulatedLedger creates an empty simulated ledger.
func NewSimulatedLedger() *SimulatedLedger {
	return &SimulatedLedger{
		balances: make(map[string]float64),
		accounts: make(map[string]bool),
		mints:    make(map[string]CreateMintRequest),
	}
}

// Balance returns the simulated SOL balance, zero for unknown addresses.
func (l *SimulatedLedger) Balance(_ context.Context, address string) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[address], nil
}

// RequestAirdrop credits the address and returns a deterministic signature.
func (l *SimulatedLedger) RequestAirdrop(_ context.Context, address string, sol float64) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[address] += sol
	return l.signature("airdrop", address), nil
}

// CreateMint derives a deterministic mint address from the request and records
// the supply under the authority's token account.
func (l *SimulatedLedger) CreateMint(_ context.Context, req CreateMintRequest) (*Mint, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sum := sha256.Sum256([]byte("mint|" + req.Name + "|" + req.Symbol + "|" + req.Authority))
	address := base58.Encode(sum[:])
	l.mints[address] = req
	l.accounts[accountKey(req.Authority, address)] = true

	return &Mint{
		Address:   address,
		Signature: l.signature("createMint", address),
		Simulated: true,
	}, nil
}

// HasTokenAccount reports whether a simulated token account exists.
func (l *SimulatedLedger) HasTokenAccount(_ context.Context, owner, mint string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accounts[accountKey(owner, mint)], nil
}

// SubmitTransfer applies the instructions atomically: create-account
// instructions materialize token accounts, transfers require one to exist
// (created earlier in the same transaction counts).
func (l *SimulatedLedger) SubmitTransfer(_ context.Context, req TransferRequest) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(req.Instructions) == 0 {
		return "", fmt.Errorf("%w: empty transaction", ErrSubmitFailed)
	}

	for _, ins := range req.Instructions {
		switch ins.Type {
		case InstructionCreateAccount:
			l.accounts[accountKey(ins.Owner, req.Mint)] = true
		case InstructionTransfer:
			if !l.accounts[accountKey(ins.Owner, req.Mint)] {
				return "", fmt.Errorf("%w: no token account for %s", ErrSubmitFailed, ins.Owner)
			}
		default:
			return "", fmt.Errorf("%w: unknown instruction type %q", ErrSubmitFailed, ins.Type)
		}
	}

	return l.signature("transfer", req.Mint), nil
}

// SetBalance seeds a balance, for composition and tests.
func (l *SimulatedLedger) SetBalance(address string, sol float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[address] = sol
}

// signature produces a deterministic, recognizably fake transaction id.
// Callers must hold l.mu.
func (l *SimulatedLedger) signature(kind, subject string) string {
	l.seq++
	sum := sha256.Sum256(fmt.Appendf(nil, "sim|%s|%s|%d", kind, subject, l.seq))
	return "SIM" + base58.Encode(sum[:])
}

func accountKey(owner, mint string) string {
	return owner + "|" + mint
}
