package settlement

import (
	"fmt"
	"strings"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/promotion"
	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

// EvaluatePromotion computes one promotion's reward for one row. The peaks
// histogram is the rider's combined histogram for a parent row and the
// single branch's histogram for a per-file child row; callers choose.
//
// When a peak precondition exists and is not met, the reward is forced to
// zero but the computed score is still returned so the statement can show
// why the promotion was withheld.
func EvaluatePromotion(cfg promotion.Config, orderCount int, peaks map[string]*settlement.PeakCounts) settlement.PromotionResult {
	res := settlement.PromotionResult{
		PromotionID: cfg.ID,
		Name:        cfg.Name,
		Type:        string(cfg.Type),
		PeakMet:     true,
	}

	switch cfg.Type {
	case promotion.TypeExcess:
		res.Reward, res.Basis = evaluateExcess(cfg, orderCount)
	case promotion.TypeMilestone:
		res.Reward, res.Basis = evaluateMilestone(cfg, orderCount)
	case promotion.TypeMilestonePerUnit:
		res.Reward, res.Basis = evaluateMilestonePerUnit(cfg, orderCount)
	default:
		res.Reward = decimal.Zero
		res.Basis = "unknown promotion type"
	}

	if cfg.Peak != nil {
		score := PeakScore(*cfg.Peak, peaks)
		res.PeakScore = &score
		if cfg.Peak.MinScore != nil && score < *cfg.Peak.MinScore {
			res.PeakMet = false
			res.Reward = decimal.Zero
			res.Basis = fmt.Sprintf("peak requirement not met: %d of %d required days", score, *cfg.Peak.MinScore)
		}
	}

	return res
}

func evaluateExcess(cfg promotion.Config, orderCount int) (decimal.Decimal, string) {
	excess := orderCount - cfg.Threshold
	if excess <= 0 {
		return decimal.Zero, fmt.Sprintf("no orders over %d", cfg.Threshold)
	}
	reward := cfg.AmountPerExcess.Mul(decimal.NewFromInt(int64(excess)))
	return reward, fmt.Sprintf("%d orders over %d x %s", excess, cfg.Threshold, cfg.AmountPerExcess.String())
}

// evaluateMilestone pays the single highest qualifying tier only.
func evaluateMilestone(cfg promotion.Config, orderCount int) (decimal.Decimal, string) {
	best := -1
	for i, tier := range cfg.Tiers {
		if tier.Threshold > orderCount {
			continue
		}
		if best < 0 || tier.Threshold > cfg.Tiers[best].Threshold {
			best = i
		}
	}
	if best < 0 {
		return decimal.Zero, "no tier reached"
	}
	tier := cfg.Tiers[best]
	return tier.Amount, fmt.Sprintf("reached %d-order tier: %s", tier.Threshold, tier.Amount.String())
}

// evaluateMilestonePerUnit stacks every tier the order count exceeds. This
// intentionally differs from evaluateMilestone's best-tier-only rule.
func evaluateMilestonePerUnit(cfg promotion.Config, orderCount int) (decimal.Decimal, string) {
	total := decimal.Zero
	var parts []string
	for _, tier := range cfg.Tiers {
		if orderCount <= tier.Threshold {
			continue
		}
		steps := (orderCount-tier.Threshold)/tier.UnitSize + 1
		reward := tier.UnitAmount.Mul(decimal.NewFromInt(int64(steps)))
		total = total.Add(reward)
		parts = append(parts, fmt.Sprintf("tier %d: %d steps x %s", tier.Threshold, steps, tier.UnitAmount.String()))
	}
	if len(parts) == 0 {
		return decimal.Zero, "no tier reached"
	}
	return total, strings.Join(parts, "; ")
}

// PeakScore counts the dates on which the requirement's slot conditions
// hold, combined per date with the requirement's mode.
func PeakScore(req promotion.PeakRequirement, peaks map[string]*settlement.PeakCounts) int {
	score := 0
	for _, counts := range peaks {
		if dateSatisfies(req, counts) {
			score++
		}
	}
	return score
}

func dateSatisfies(req promotion.PeakRequirement, counts *settlement.PeakCounts) bool {
	if counts == nil || len(req.Conditions) == 0 {
		return false
	}
	for _, cond := range req.Conditions {
		met := counts.Count(cond.Slot) >= cond.MinCount
		if req.Mode == promotion.CombineOr && met {
			return true
		}
		if req.Mode != promotion.CombineOr && !met {
			return false
		}
	}
	return req.Mode != promotion.CombineOr
}
