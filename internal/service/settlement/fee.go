package settlement

import (
	"github.com/beginal/jeongsan-admin-sub000/internal/domain/branch"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeFee applies a branch's fee policy. With no policy configured the
// fee carried over from the source file is kept as-is.
func ComputeFee(policy *branch.FeePolicy, orderCount int, settlementBase, carriedFee decimal.Decimal) decimal.Decimal {
	if policy == nil {
		return carriedFee
	}
	switch policy.Type {
	case branch.FeePerCase:
		return policy.Value.Mul(decimal.NewFromInt(int64(orderCount))).Round(0)
	case branch.FeePercentage:
		return settlementBase.Mul(policy.Value).Div(hundred).Round(0)
	}
	return carriedFee
}
