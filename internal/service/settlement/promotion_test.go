package settlement

import (
	"testing"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/promotion"
	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func excessConfig(threshold int, amount int64) promotion.Config {
	return promotion.Config{
		ID:              "p-excess",
		Name:            "초과 프로모션",
		Type:            promotion.TypeExcess,
		Threshold:       threshold,
		AmountPerExcess: decimal.NewFromInt(amount),
	}
}

func TestEvaluatePromotion_Excess(t *testing.T) {
	cfg := excessConfig(100, 1000)

	cases := []struct {
		orders int
		want   string
	}{
		{99, "0"},
		{100, "0"},
		{101, "1000"},
		{137, "37000"},
	}
	for _, c := range cases {
		res := EvaluatePromotion(cfg, c.orders, nil)
		assert.Equal(t, c.want, res.Reward.String(), "orders=%d", c.orders)
	}
}

func TestEvaluatePromotion_MilestoneBestTierOnly(t *testing.T) {
	cfg := promotion.Config{
		ID:   "p-milestone",
		Type: promotion.TypeMilestone,
		Tiers: []promotion.Tier{
			{Threshold: 100, Amount: decimal.NewFromInt(5000)},
			{Threshold: 150, Amount: decimal.NewFromInt(12000)},
		},
	}

	// 160 orders qualifies for both tiers but only the highest pays.
	res := EvaluatePromotion(cfg, 160, nil)
	assert.Equal(t, "12000", res.Reward.String())

	res = EvaluatePromotion(cfg, 120, nil)
	assert.Equal(t, "5000", res.Reward.String())

	res = EvaluatePromotion(cfg, 99, nil)
	assert.Equal(t, "0", res.Reward.String())
	assert.Equal(t, "no tier reached", res.Basis)
}

func TestEvaluatePromotion_MilestonePerUnitStacksTiers(t *testing.T) {
	cfg := promotion.Config{
		ID:   "p-unit",
		Type: promotion.TypeMilestonePerUnit,
		Tiers: []promotion.Tier{
			{Threshold: 100, UnitSize: 10, UnitAmount: decimal.NewFromInt(500)},
		},
	}

	// floor(25/10)+1 = 3 steps.
	res := EvaluatePromotion(cfg, 125, nil)
	assert.Equal(t, "1500", res.Reward.String())

	// At the threshold exactly, no step.
	res = EvaluatePromotion(cfg, 100, nil)
	assert.Equal(t, "0", res.Reward.String())
}

// The same tier table must pay differently under milestone and
// milestone-per-unit: single best tier vs every qualifying tier.
func TestEvaluatePromotion_MilestoneVariantsDiffer(t *testing.T) {
	tiers := []promotion.Tier{
		{Threshold: 50, Amount: decimal.NewFromInt(3000), UnitSize: 10, UnitAmount: decimal.NewFromInt(3000)},
		{Threshold: 100, Amount: decimal.NewFromInt(8000), UnitSize: 10, UnitAmount: decimal.NewFromInt(8000)},
	}
	milestone := promotion.Config{ID: "a", Type: promotion.TypeMilestone, Tiers: tiers}
	perUnit := promotion.Config{ID: "b", Type: promotion.TypeMilestonePerUnit, Tiers: tiers}

	m := EvaluatePromotion(milestone, 120, nil)
	u := EvaluatePromotion(perUnit, 120, nil)
	assert.Equal(t, "8000", m.Reward.String())
	// per-unit: tier 50 pays floor(70/10)+1=8 steps, tier 100 pays
	// floor(20/10)+1=3 steps.
	assert.Equal(t, "48000", u.Reward.String())
	assert.NotEqual(t, m.Reward.String(), u.Reward.String())
}

func peaks(dates map[string]settlement.PeakCounts) map[string]*settlement.PeakCounts {
	out := make(map[string]*settlement.PeakCounts, len(dates))
	for d, c := range dates {
		counts := c
		out[d] = &counts
	}
	return out
}

func TestEvaluatePromotion_PeakGateAnd(t *testing.T) {
	minScore := 2
	cfg := excessConfig(100, 1000)
	cfg.Peak = &promotion.PeakRequirement{
		Mode:     promotion.CombineAnd,
		MinScore: &minScore,
		Conditions: []promotion.PeakCondition{
			{Slot: settlement.SlotLunch, MinCount: 3},
			{Slot: settlement.SlotDinner, MinCount: 3},
		},
	}

	// Both conditions met on exactly two dates: promotion granted.
	granted := EvaluatePromotion(cfg, 137, peaks(map[string]settlement.PeakCounts{
		"2025-08-18": {Lunch: 3, Dinner: 4},
		"2025-08-19": {Lunch: 5, Dinner: 3},
		"2025-08-20": {Lunch: 1, Dinner: 9},
	}))
	require.NotNil(t, granted.PeakScore)
	assert.Equal(t, 2, *granted.PeakScore)
	assert.True(t, granted.PeakMet)
	assert.Equal(t, "37000", granted.Reward.String())

	// Only one qualifying date: reward forced to zero, score still
	// reported for the "did not meet" explanation.
	blocked := EvaluatePromotion(cfg, 137, peaks(map[string]settlement.PeakCounts{
		"2025-08-18": {Lunch: 3, Dinner: 4},
		"2025-08-19": {Lunch: 5, Dinner: 2},
	}))
	require.NotNil(t, blocked.PeakScore)
	assert.Equal(t, 1, *blocked.PeakScore)
	assert.False(t, blocked.PeakMet)
	assert.Equal(t, "0", blocked.Reward.String())
}

func TestEvaluatePromotion_PeakGateOr(t *testing.T) {
	minScore := 1
	cfg := excessConfig(0, 100)
	cfg.Peak = &promotion.PeakRequirement{
		Mode:     promotion.CombineOr,
		MinScore: &minScore,
		Conditions: []promotion.PeakCondition{
			{Slot: settlement.SlotLunch, MinCount: 5},
			{Slot: settlement.SlotDinner, MinCount: 5},
		},
	}

	res := EvaluatePromotion(cfg, 10, peaks(map[string]settlement.PeakCounts{
		"2025-08-18": {Lunch: 0, Dinner: 6},
	}))
	require.NotNil(t, res.PeakScore)
	assert.Equal(t, 1, *res.PeakScore)
	assert.True(t, res.PeakMet)
}

func TestEvaluatePromotion_PeakWithoutMinScoreIsInformational(t *testing.T) {
	cfg := excessConfig(100, 1000)
	cfg.Peak = &promotion.PeakRequirement{
		Mode: promotion.CombineAnd,
		Conditions: []promotion.PeakCondition{
			{Slot: settlement.SlotLunch, MinCount: 99},
		},
	}

	res := EvaluatePromotion(cfg, 137, peaks(map[string]settlement.PeakCounts{
		"2025-08-18": {Lunch: 1},
	}))
	require.NotNil(t, res.PeakScore)
	assert.Equal(t, 0, *res.PeakScore)
	// No MinScore configured: the score is informational only.
	assert.True(t, res.PeakMet)
	assert.Equal(t, "37000", res.Reward.String())
}

func TestExcessRewardNonDecreasing(t *testing.T) {
	cfg := excessConfig(100, 1000)
	prev := decimal.Zero
	for orders := 0; orders <= 200; orders++ {
		res := EvaluatePromotion(cfg, orders, nil)
		assert.False(t, res.Reward.LessThan(prev), "reward decreased at %d orders", orders)
		prev = res.Reward
	}
}
