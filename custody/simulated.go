package custody

import (
	"context"
	"crypto/sha256"

	"github.com/mr-tron/base58"
)

// SimulatedProvider derives deterministic wallet addresses from email hashes.
// It lets operators rehearse the full workflow without live custody
// credentials; every wallet it returns is marked Simulated.
type SimulatedProvider struct {
	// Balance is the SOL balance reported for every wallet.
	Balance float64
}

// NewSimulatedProvider creates a SimulatedProvider with a small default balance.
func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{Balance: 0.1}
}

// ProvisionWallet derives a deterministic address from the email.
// The address is base58(SHA256(email)), matching the ledger's 32-byte
// public-key address format.
func (p *SimulatedProvider) ProvisionWallet(_ context.Context, email string) (*Wallet, error) {
	if email == "" {
		return nil, ErrEmptyEmail
	}
	sum := sha256.Sum256([]byte(email))
	return &Wallet{
		Email:     email,
		Address:   base58.Encode(sum[:]),
		Simulated: true,
	}, nil
}

// WalletBalance reports the configured flat balance.
func (p *SimulatedProvider) WalletBalance(_ context.Context, email string) (float64, error) {
	if email == "" {
		return 0, ErrEmptyEmail
	}
	return p.Balance, nil
}
