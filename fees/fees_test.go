package fees

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateFees_Zero(t *testing.T) {
	e := EstimateFees(0)
	assert.Zero(t, e.AccountCreationFee)
	assert.Zero(t, e.TransactionFee)
	assert.Zero(t, e.TotalFee)
}

func TestEstimateFees_Additive(t *testing.T) {
	for _, n := range []int{0, 1, 5, 13, 100, 10000} {
		e := EstimateFees(n)
		assert.Equal(t, e.AccountCreationFee+e.TransactionFee, e.TotalFee, "n=%d", n)
	}
}

func TestEstimateFees_Linear(t *testing.T) {
	one := EstimateFees(1)
	for _, n := range []int{2, 7, 50} {
		e := EstimateFees(n)
		assert.InDelta(t, one.AccountCreationFee*float64(n), e.AccountCreationFee, 1e-12)
		assert.InDelta(t, one.TransactionFee*float64(n), e.TransactionFee, 1e-12)
		assert.InDelta(t, one.TotalFee*float64(n), e.TotalFee, 1e-12)
	}
}

func TestEstimateFees_Values(t *testing.T) {
	e := EstimateFees(10)
	assert.InDelta(t, 0.0001, e.AccountCreationFee, 1e-12)
	assert.InDelta(t, 0.00005, e.TransactionFee, 1e-12)
	assert.InDelta(t, 0.00015, e.TotalFee, 1e-12)
}
