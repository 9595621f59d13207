// Package fees estimates the network cost of a token distribution.
//
// Costs scale linearly with the recipient count: each recipient may need an
// associated token account created (rent-exempt minimum) and contributes one
// transfer signature to a batch transaction.
package fees

const (
	// AccountCreationCost is the per-recipient cost in SOL of creating an
	// associated token account.
	AccountCreationCost = 0.00001

	// SignatureCost is the per-recipient transaction signature cost in SOL.
	SignatureCost = 0.000005
)

// Estimate holds the fee breakdown for a distribution, in SOL.
type Estimate struct {
	AccountCreationFee float64 `json:"account_creation_fee"`
	TransactionFee     float64 `json:"transaction_fee"`
	TotalFee           float64 `json:"total_fee"`
}

// EstimateFees computes the estimated fees for distributing to recipientCount
// recipients. Zero recipients yields zero fees; there are no error conditions.
func EstimateFees(recipientCount int) Estimate {
	n := float64(recipientCount)
	e := Estimate{
		AccountCreationFee: AccountCreationCost * n,
		TransactionFee:     SignatureCost * n,
	}
	e.TotalFee = e.AccountCreationFee + e.TransactionFee
	return e
}
