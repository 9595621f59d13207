// Package solana is the narrow client for the ledger the workflow distributes
// on: an ed25519/base58 token ledger with SPL-style mints and per-owner token
// accounts. The workflow only sees the LedgerService interface; live, simulated
// and mock implementations are composition-time choices.
package solana

import "context"

// LamportsPerSOL is the number of lamports in one SOL.
const LamportsPerSOL = 1_000_000_000

// LedgerService is the primary interface for ledger interaction.
type LedgerService interface {
	// Balance returns the SOL balance of an address.
	Balance(ctx context.Context, address string) (float64, error)

	// RequestAirdrop asks the network faucet to fund an address (devnet and
	// testnet only) and returns the funding transaction id.
	RequestAirdrop(ctx context.Context, address string, sol float64) (string, error)

	// CreateMint creates a new token mint and mints the full supply to the
	// authority's token account.
	CreateMint(ctx context.Context, req CreateMintRequest) (*Mint, error)

	// HasTokenAccount reports whether owner already has a token account for mint.
	HasTokenAccount(ctx context.Context, owner, mint string) (bool, error)

	// SubmitTransfer submits one atomic transaction carrying the given
	// instructions and returns its transaction id.
	SubmitTransfer(ctx context.Context, req TransferRequest) (string, error)
}

// CreateMintRequest describes a new token mint.
type CreateMintRequest struct {
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Supply    uint64 `json:"supply"`
	Decimals  uint8  `json:"decimals"`
	Authority string `json:"authority"` // base58 address of the mint authority
}

// Mint describes a created token mint.
type Mint struct {
	Address   string `json:"address"` // base58 mint address
	Signature string `json:"signature"`
	Simulated bool   `json:"simulated,omitempty"`
}

// InstructionType distinguishes the two instruction kinds a distribution
// transaction carries.
type InstructionType string

const (
	// InstructionCreateAccount creates a token account for Owner on Mint.
	InstructionCreateAccount InstructionType = "create_account"
	// InstructionTransfer moves Amount base units of Mint to Owner's account.
	InstructionTransfer InstructionType = "transfer"
)

// Instruction is one instruction within a transfer transaction.
type Instruction struct {
	Type   InstructionType `json:"type"`
	Owner  string          `json:"owner"`            // base58 recipient address
	Amount uint64          `json:"amount,omitempty"` // base units, transfer only
}

// TransferRequest is one atomic batch transaction.
type TransferRequest struct {
	Mint         string        `json:"mint"`
	Sender       string        `json:"sender"` // base58 source owner address
	Instructions []Instruction `json:"instructions"`
}
