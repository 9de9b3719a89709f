package promotion

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

// Param field aliases, in recognition order. Older promotion records were
// written by several generations of the admin UI and name the same concept
// differently; the first present key wins.
var (
	thresholdKeys  = []string{"threshold", "base_count", "min_orders"}
	amountKeys     = []string{"amount", "reward"}
	unitSizeKeys   = []string{"unit_size", "per_count"}
	unitAmountKeys = []string{"unit_amount", "per_amount"}
	tiersKeys      = []string{"tiers", "levels"}
	peakKeys       = []string{"peak", "peak_condition"}
)

func firstKey(raw map[string]json.RawMessage, keys []string) (json.RawMessage, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func intField(raw map[string]json.RawMessage, keys []string) (int, bool, error) {
	v, ok := firstKey(raw, keys)
	if !ok {
		return 0, false, nil
	}
	var n int
	if err := json.Unmarshal(v, &n); err != nil {
		return 0, false, fmt.Errorf("field %s: %w", keys[0], err)
	}
	return n, true, nil
}

func decimalField(raw map[string]json.RawMessage, keys []string) (decimal.Decimal, bool, error) {
	v, ok := firstKey(raw, keys)
	if !ok {
		return decimal.Zero, false, nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(v, &d); err != nil {
		return decimal.Zero, false, fmt.Errorf("field %s: %w", keys[0], err)
	}
	return d, true, nil
}

// rawPeak matches the stored shape of a peak requirement. Slots are stored
// as labels, not enum values.
type rawPeak struct {
	Mode       string `json:"mode"`
	MinScore   *int   `json:"min_score"`
	Conditions []struct {
		Slot     string `json:"slot"`
		MinCount int    `json:"min_count"`
	} `json:"conditions"`
}

// Normalize resolves a stored promotion's Params into a Config the engine
// can evaluate. It is the single place legacy field-name variants are
// recognized; evaluation code never inspects raw params.
func Normalize(p Promotion) (Config, error) {
	cfg := Config{ID: p.ID, Name: p.Name, Type: p.Type}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(p.Params, &raw); err != nil {
		return Config{}, fmt.Errorf("promotion %s: invalid params: %w", p.ID, err)
	}

	switch p.Type {
	case TypeExcess:
		threshold, ok, err := intField(raw, thresholdKeys)
		if err != nil {
			return Config{}, fmt.Errorf("promotion %s: %w", p.ID, err)
		}
		if !ok {
			return Config{}, fmt.Errorf("promotion %s: %w", p.ID, ErrMissingThreshold)
		}
		amount, ok, err := decimalField(raw, amountKeys)
		if err != nil {
			return Config{}, fmt.Errorf("promotion %s: %w", p.ID, err)
		}
		if !ok {
			return Config{}, fmt.Errorf("promotion %s: %w", p.ID, ErrMissingAmount)
		}
		cfg.Threshold = threshold
		cfg.AmountPerExcess = amount

	case TypeMilestone, TypeMilestonePerUnit:
		tiersRaw, ok := firstKey(raw, tiersKeys)
		if !ok {
			return Config{}, fmt.Errorf("promotion %s: %w", p.ID, ErrMissingTiers)
		}
		var rawTiers []map[string]json.RawMessage
		if err := json.Unmarshal(tiersRaw, &rawTiers); err != nil {
			return Config{}, fmt.Errorf("promotion %s: invalid tiers: %w", p.ID, err)
		}
		for i, rt := range rawTiers {
			tier, err := normalizeTier(rt, p.Type)
			if err != nil {
				return Config{}, fmt.Errorf("promotion %s: tier %d: %w", p.ID, i, err)
			}
			cfg.Tiers = append(cfg.Tiers, tier)
		}
		if len(cfg.Tiers) == 0 {
			return Config{}, fmt.Errorf("promotion %s: %w", p.ID, ErrMissingTiers)
		}

	default:
		return Config{}, fmt.Errorf("promotion %s: %w: %s", p.ID, ErrUnknownType, p.Type)
	}

	peak, err := normalizePeak(raw, p.ID)
	if err != nil {
		return Config{}, err
	}
	cfg.Peak = peak

	return cfg, nil
}

func normalizeTier(raw map[string]json.RawMessage, typ PromotionType) (Tier, error) {
	var tier Tier

	threshold, ok, err := intField(raw, thresholdKeys)
	if err != nil {
		return Tier{}, err
	}
	if !ok {
		return Tier{}, ErrMissingThreshold
	}
	tier.Threshold = threshold

	switch typ {
	case TypeMilestone:
		amount, ok, err := decimalField(raw, amountKeys)
		if err != nil {
			return Tier{}, err
		}
		if !ok {
			return Tier{}, ErrMissingAmount
		}
		tier.Amount = amount
	case TypeMilestonePerUnit:
		unitSize, ok, err := intField(raw, unitSizeKeys)
		if err != nil {
			return Tier{}, err
		}
		if !ok || unitSize <= 0 {
			return Tier{}, ErrInvalidUnitSize
		}
		unitAmount, ok, err := decimalField(raw, unitAmountKeys)
		if err != nil {
			return Tier{}, err
		}
		if !ok {
			return Tier{}, ErrMissingAmount
		}
		tier.UnitSize = unitSize
		tier.UnitAmount = unitAmount
	}

	return tier, nil
}

func normalizePeak(raw map[string]json.RawMessage, promotionID string) (*PeakRequirement, error) {
	v, ok := firstKey(raw, peakKeys)
	if !ok || string(v) == "null" {
		return nil, nil
	}

	var rp rawPeak
	if err := json.Unmarshal(v, &rp); err != nil {
		return nil, fmt.Errorf("promotion %s: invalid peak requirement: %w", promotionID, err)
	}

	req := &PeakRequirement{MinScore: rp.MinScore}
	switch strings.ToLower(rp.Mode) {
	case "and", "all", "":
		req.Mode = CombineAnd
	case "or", "any":
		req.Mode = CombineOr
	default:
		return nil, fmt.Errorf("promotion %s: invalid peak mode %q", promotionID, rp.Mode)
	}

	for _, c := range rp.Conditions {
		slot, ok := settlement.ParseSlot(c.Slot)
		if !ok {
			return nil, fmt.Errorf("promotion %s: unknown peak slot %q", promotionID, c.Slot)
		}
		req.Conditions = append(req.Conditions, PeakCondition{Slot: slot, MinCount: c.MinCount})
	}
	if len(req.Conditions) == 0 {
		return nil, fmt.Errorf("promotion %s: peak requirement has no conditions", promotionID)
	}

	return req, nil
}
