package workflow

import (
	"context"
	"fmt"

	"github.com/monostate/Employees-Airdrop-Rewards-MCP/custody"
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/solana"
)

// ConnectWallet connects the funding wallet from a base58 private key.
// No preconditions. When rpcURL is given and a ledger factory is configured,
// the session switches to that endpoint first. A failing balance lookup
// degrades the session to the simulated ledger, whose faucet funds the
// wallet, instead of aborting.
func (o *Orchestrator) ConnectWallet(ctx context.Context, privateKey, rpcURL string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	keypair, err := solana.ParsePrivateKey(privateKey)
	if err != nil {
		return "", classify(err)
	}

	if rpcURL != "" && o.ledgerFactory != nil {
		ledger, err := o.ledgerFactory(rpcURL)
		if err != nil {
			return "", classify(err)
		}
		o.ledger = ledger
		o.degraded = false
	}

	address := keypair.Address()
	balance, err := o.activeLedger().Balance(ctx, address)
	if err != nil {
		o.degrade("connect_wallet", err)
		balance = 0
	}
	if o.degraded && balance == 0 {
		// Fund the rehearsal wallet through the simulated faucet so
		// liquidity and fee checks have something to spend.
		if _, err := o.sim.RequestAirdrop(ctx, address, 1); err == nil {
			balance, _ = o.sim.Balance(ctx, address)
		}
	}

	o.funding = keypair
	o.wallet = &Wallet{
		PublicKey:  address,
		SolBalance: balance,
		Simulated:  o.degraded,
	}

	return fmt.Sprintf("Connected wallet %s with balance %.9f SOL%s",
		address, balance, simNote(o.degraded)), nil
}

// ConnectCustodialWallet connects a custody-held funding wallet addressed by
// email. The local funding keypair file is created on first use and reused
// thereafter; it is the on-ledger identity paired with the custodial wallet.
func (o *Orchestrator) ConnectCustodialWallet(ctx context.Context, email, apiKey string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if email == "" {
		return "", validationf("email is required")
	}

	provider, err := o.custodyProvider(apiKey)
	if err != nil {
		return "", classify(err)
	}

	wallet, err := provider.ProvisionWallet(ctx, email)
	if err != nil {
		o.degrade("connect_custodial_wallet", err)
		wallet, err = custody.NewSimulatedProvider().ProvisionWallet(ctx, email)
		if err != nil {
			return "", classify(err)
		}
	}

	balance, err := provider.WalletBalance(ctx, email)
	if err != nil {
		balance = 0
	}

	var created string
	if o.keys != nil {
		keypair, mnemonic, err := o.keys.LoadOrCreate()
		if err != nil {
			return "", classify(err)
		}
		o.funding = keypair
		if mnemonic != "" {
			created = "\nNew funding keypair created; back up this mnemonic now:\n" + mnemonic
		}
	}

	o.wallet = &Wallet{
		PublicKey:  wallet.Address,
		SolBalance: balance,
		Custodial:  true,
		Email:      email,
		Simulated:  wallet.Simulated,
	}

	return fmt.Sprintf("Connected custodial wallet for %s: %s (balance %.9f SOL)%s%s",
		email, wallet.Address, balance, simNote(wallet.Simulated), created), nil
}

// CheckBalance refreshes and reports the connected wallet's balance.
// Precondition: a wallet is connected.
func (o *Orchestrator) CheckBalance(ctx context.Context) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.wallet == nil {
		return "", preconditionf("no wallet connected; call connect_wallet first")
	}

	if o.wallet.Custodial {
		balance, err := o.custody.WalletBalance(ctx, o.wallet.Email)
		if err == nil {
			o.wallet.SolBalance = balance
		}
	} else {
		balance, err := o.activeLedger().Balance(ctx, o.wallet.PublicKey)
		if err != nil {
			o.degrade("check_balance", err)
		} else {
			o.wallet.SolBalance = balance
		}
	}

	return fmt.Sprintf("Wallet %s balance: %.9f SOL%s",
		o.wallet.PublicKey, o.wallet.SolBalance, simNote(o.wallet.Simulated)), nil
}

func simNote(simulated bool) string {
	if simulated {
		return " [simulated]"
	}
	return ""
}
