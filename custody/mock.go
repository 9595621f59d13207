package custody

import "context"

// MockProvider is a test double for Provider.
// All function fields must be set before the corresponding method is called.
type MockProvider struct {
	ProvisionWalletFn func(ctx context.Context, email string) (*Wallet, error)
	WalletBalanceFn   func(ctx context.Context, email string) (float64, error)
}

func (m *MockProvider) ProvisionWallet(ctx context.Context, email string) (*Wallet, error) {
	return m.ProvisionWalletFn(ctx, email)
}

func (m *MockProvider) WalletBalance(ctx context.Context, email string) (float64, error) {
	return m.WalletBalanceFn(ctx, email)
}
