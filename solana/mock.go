package solana

import "context"

// MockLedgerService is a test double for LedgerService.
// All function fields must be set before the corresponding method is called.
type MockLedgerService struct {
	BalanceFn         func(ctx context.Context, address string) (float64, error)
	RequestAirdropFn  func(ctx context.Context, address string, sol float64) (string, error)
	CreateMintFn      func(ctx context.Context, req CreateMintRequest) (*Mint, error)
	HasTokenAccountFn func(ctx context.Context, owner, mint string) (bool, error)
	SubmitTransferFn  func(ctx context.Context, req TransferRequest) (string, error)
}

func (m *MockLedgerService) Balance(ctx context.Context, address string) (float64, error) {
	return m.BalanceFn(ctx, address)
}

func (m *MockLedgerService) RequestAirdrop(ctx context.Context, address string, sol float64) (string, error) {
	return m.RequestAirdropFn(ctx, address, sol)
}

func (m *MockLedgerService) CreateMint(ctx context.Context, req CreateMintRequest) (*Mint, error) {
	return m.CreateMintFn(ctx, req)
}

func (m *MockLedgerService) HasTokenAccount(ctx context.Context, owner, mint string) (bool, error) {
	return m.HasTokenAccountFn(ctx, owner, mint)
}

func (m *MockLedgerService) SubmitTransfer(ctx context.Context, req TransferRequest) (string, error) {
	return m.SubmitTransferFn(ctx, req)
}
