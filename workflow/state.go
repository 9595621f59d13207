package workflow

import (
	"github.com/monostate/Employees-Airdrop-Rewards-MCP/registry"
)

// Wallet is the connected distribution-funding wallet.
type Wallet struct {
	PublicKey  string  `json:"public_key"`
	SolBalance float64 `json:"sol_balance"`
	Custodial  bool    `json:"custodial,omitempty"`
	Email      string  `json:"email,omitempty"` // custodial wallets are addressed by email
	Simulated  bool    `json:"simulated,omitempty"`
}

// Token is the created token mint. Immutable once set within a session.
type Token struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	MintAddress string `json:"mint_address"`
	Supply      uint64 `json:"supply"`
	Decimals    uint8  `json:"decimals"`
	Simulated   bool   `json:"simulated,omitempty"`
}

// LiquidityPool records the liquidity seeded for the token.
type LiquidityPool struct {
	TokenAmount float64 `json:"token_amount"`
	SolAmount   float64 `json:"sol_amount"`
}

// AirdropStatus tracks the distribution outcome. Completed is monotonic: once
// true it is never reset within a session.
type AirdropStatus struct {
	Started    bool   `json:"started"`
	Completed  bool   `json:"completed"`
	Successful int    `json:"successful_count"`
	Failed     int    `json:"failed_count"`
	RunID      string `json:"run_id,omitempty"`
}

// EmailStatus tracks notification delivery.
type EmailStatus struct {
	Sent       bool `json:"sent"`
	Successful int  `json:"successful_count"`
	Failed     int  `json:"failed_count"`
}

// State is a read-only snapshot of the workflow aggregate.
type State struct {
	Wallet    *Wallet             `json:"wallet,omitempty"`
	Token     *Token              `json:"token,omitempty"`
	Pool      *LiquidityPool      `json:"pool,omitempty"`
	Employees []registry.Employee `json:"employees,omitempty"`
	Airdrop   AirdropStatus       `json:"airdrop_status"`
	Email     EmailStatus         `json:"email_status"`
}

// snapshot deep-copies the aggregate so callers can never reach back into the
// orchestrator's state. Callers must hold o.mu.
func (o *Orchestrator) snapshot() State {
	s := State{
		Airdrop: o.airdropStatus,
		Email:   o.emailStatus,
	}
	if o.wallet != nil {
		w := *o.wallet
		s.Wallet = &w
	}
	if o.token != nil {
		tok := *o.token
		s.Token = &tok
	}
	if o.pool != nil {
		p := *o.pool
		s.Pool = &p
	}
	if len(o.employees) > 0 {
		s.Employees = make([]registry.Employee, len(o.employees))
		copy(s.Employees, o.employees)
		for i := range s.Employees {
			if s.Employees[i].TokenAmount != nil {
				amount := *s.Employees[i].TokenAmount
				s.Employees[i].TokenAmount = &amount
			}
		}
	}
	return s
}
