package workflow

import (
	"context"
	"fmt"

	"github.com/monostate/Employees-Airdrop-Rewards-MCP/solana"
)

// CreateToken creates the token mint with the full supply minted to the
// connected wallet. Precondition: a wallet is connected. The token is
// immutable once created within a session. A failing mint call degrades to a
// clearly-labeled simulated mint instead of aborting.
func (o *Orchestrator) CreateToken(ctx context.Context, name, symbol string, supply uint64, decimals uint8) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.wallet == nil {
		return "", preconditionf("no wallet connected; call connect_wallet first")
	}
	if o.token != nil {
		return "", preconditionf("token %s already created; one token per session", o.token.Symbol)
	}
	if name == "" || symbol == "" {
		return "", validationf("token name and symbol are required")
	}
	if supply == 0 {
		return "", validationf("supply must be a positive integer")
	}
	if decimals > 9 {
		return "", validationf("decimals must be between 0 and 9, got %d", decimals)
	}

	req := solana.CreateMintRequest{
		Name:      name,
		Symbol:    symbol,
		Supply:    supply,
		Decimals:  decimals,
		Authority: o.wallet.PublicKey,
	}

	mint, err := o.activeLedger().CreateMint(ctx, req)
	if err != nil {
		o.degrade("create_token", err)
		mint, err = o.sim.CreateMint(ctx, req)
		if err != nil {
			return "", classify(err)
		}
	}

	o.token = &Token{
		Name:        name,
		Symbol:      symbol,
		MintAddress: mint.Address,
		Supply:      supply,
		Decimals:    decimals,
		Simulated:   mint.Simulated,
	}

	return fmt.Sprintf("Created token %s (%s): mint %s, supply %d, %d decimals%s",
		name, symbol, mint.Address, supply, decimals, simNote(mint.Simulated)), nil
}

// AddLiquidity seeds the token's liquidity pool and debits the wallet's SOL
// balance. Preconditions: wallet connected, token created, and the wallet
// balance covers the requested SOL amount.
func (o *Orchestrator) AddLiquidity(ctx context.Context, tokenAmount, solAmount float64) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.wallet == nil {
		return "", preconditionf("no wallet connected; call connect_wallet first")
	}
	if o.token == nil {
		return "", preconditionf("no token created; call create_token first")
	}
	if tokenAmount <= 0 || solAmount <= 0 {
		return "", validationf("tokenAmount and solAmount must be positive")
	}
	if o.wallet.SolBalance < solAmount {
		return "", preconditionf("insufficient balance: have %.9f SOL, need %.9f SOL",
			o.wallet.SolBalance, solAmount)
	}

	o.wallet.SolBalance -= solAmount
	if o.pool == nil {
		o.pool = &LiquidityPool{}
	}
	o.pool.TokenAmount += tokenAmount
	o.pool.SolAmount += solAmount

	return fmt.Sprintf("Added liquidity: %.4f %s + %.9f SOL (remaining balance %.9f SOL)",
		tokenAmount, o.token.Symbol, solAmount, o.wallet.SolBalance), nil
}
