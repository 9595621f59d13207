// Package custody talks to an external wallet-custody service that holds
// signing keys on behalf of employees, addressed by email. The workflow only
// needs two things from it: provisioning a wallet for an email, and reading a
// wallet's balance.
package custody

import (
	"context"
	"strings"
)

// Provider is the narrow interface the workflow needs from a custody service.
type Provider interface {
	// ProvisionWallet creates (or fetches, if it already exists) the custodial
	// wallet for the given email and returns its on-ledger address.
	ProvisionWallet(ctx context.Context, email string) (*Wallet, error)

	// WalletBalance returns the SOL balance of the custodial wallet for email.
	WalletBalance(ctx context.Context, email string) (float64, error)
}

// Wallet describes a provisioned custodial wallet.
type Wallet struct {
	Email     string `json:"email"`
	Address   string `json:"address"`
	Simulated bool   `json:"simulated,omitempty"` // true when produced by the simulated provider
}

// EmailDomain extracts the domain part of an email address.
// Returns an empty string when the address has no "@".
func EmailDomain(email string) string {
	_, domain, found := strings.Cut(email, "@")
	if !found {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(domain))
}
