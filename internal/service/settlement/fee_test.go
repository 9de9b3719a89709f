package settlement

import (
	"testing"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/branch"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeFee_PerCase(t *testing.T) {
	policy := &branch.FeePolicy{Type: branch.FeePerCase, Value: decimal.RequireFromString("105.5")}

	fee := ComputeFee(policy, 137, decimal.Zero, decimal.Zero)
	// 105.5 * 137 = 14453.5, rounded.
	assert.Equal(t, "14454", fee.String())
}

func TestComputeFee_Percentage(t *testing.T) {
	policy := &branch.FeePolicy{Type: branch.FeePercentage, Value: decimal.RequireFromString("3")}

	fee := ComputeFee(policy, 0, decimal.NewFromInt(680000), decimal.Zero)
	assert.Equal(t, "20400", fee.String())
}

func TestComputeFee_NoPolicyKeepsCarriedFee(t *testing.T) {
	carried := decimal.NewFromInt(6000)
	fee := ComputeFee(nil, 137, decimal.NewFromInt(680000), carried)
	assert.True(t, fee.Equal(carried))
}
