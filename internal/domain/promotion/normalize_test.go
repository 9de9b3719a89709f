package promotion

import (
	"testing"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_ExcessCanonicalFields(t *testing.T) {
	cfg, err := Normalize(Promotion{
		ID: "p1", Name: "초과", Type: TypeExcess,
		Params: []byte(`{"threshold": 100, "amount": 1000}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Threshold)
	assert.Equal(t, "1000", cfg.AmountPerExcess.String())
	assert.Nil(t, cfg.Peak)
}

func TestNormalize_LegacyFieldNames(t *testing.T) {
	// Older records name the threshold base_count or min_orders and the
	// amount reward.
	cases := []string{
		`{"base_count": 100, "reward": 1000}`,
		`{"min_orders": 100, "amount": 1000}`,
	}
	for _, params := range cases {
		cfg, err := Normalize(Promotion{ID: "p1", Type: TypeExcess, Params: []byte(params)})
		require.NoError(t, err, "params=%s", params)
		assert.Equal(t, 100, cfg.Threshold, "params=%s", params)
		assert.Equal(t, "1000", cfg.AmountPerExcess.String(), "params=%s", params)
	}
}

func TestNormalize_FirstAliasWins(t *testing.T) {
	cfg, err := Normalize(Promotion{
		ID: "p1", Type: TypeExcess,
		Params: []byte(`{"threshold": 100, "base_count": 999, "amount": 1000}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Threshold)
}

func TestNormalize_MilestoneTiers(t *testing.T) {
	cfg, err := Normalize(Promotion{
		ID: "p2", Type: TypeMilestone,
		Params: []byte(`{"tiers": [
			{"threshold": 100, "amount": 5000},
			{"threshold": 150, "reward": 12000}
		]}`),
	})
	require.NoError(t, err)
	require.Len(t, cfg.Tiers, 2)
	assert.Equal(t, 150, cfg.Tiers[1].Threshold)
	assert.Equal(t, "12000", cfg.Tiers[1].Amount.String())
}

func TestNormalize_MilestonePerUnitLegacyLevels(t *testing.T) {
	cfg, err := Normalize(Promotion{
		ID: "p3", Type: TypeMilestonePerUnit,
		Params: []byte(`{"levels": [
			{"min_orders": 100, "per_count": 10, "per_amount": 500}
		]}`),
	})
	require.NoError(t, err)
	require.Len(t, cfg.Tiers, 1)
	assert.Equal(t, 100, cfg.Tiers[0].Threshold)
	assert.Equal(t, 10, cfg.Tiers[0].UnitSize)
	assert.Equal(t, "500", cfg.Tiers[0].UnitAmount.String())
}

func TestNormalize_RejectsNonPositiveUnitSize(t *testing.T) {
	_, err := Normalize(Promotion{
		ID: "p3", Type: TypeMilestonePerUnit,
		Params: []byte(`{"tiers": [{"threshold": 100, "unit_size": 0, "unit_amount": 500}]}`),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidUnitSize)
}

func TestNormalize_PeakRequirement(t *testing.T) {
	cfg, err := Normalize(Promotion{
		ID: "p4", Type: TypeExcess,
		Params: []byte(`{"threshold": 50, "amount": 500, "peak": {
			"mode": "and",
			"min_score": 2,
			"conditions": [
				{"slot": "점심피크", "min_count": 3},
				{"slot": "dinner_peak", "min_count": 3}
			]
		}}`),
	})
	require.NoError(t, err)
	require.NotNil(t, cfg.Peak)
	assert.Equal(t, CombineAnd, cfg.Peak.Mode)
	require.NotNil(t, cfg.Peak.MinScore)
	assert.Equal(t, 2, *cfg.Peak.MinScore)
	require.Len(t, cfg.Peak.Conditions, 2)
	assert.Equal(t, settlement.SlotLunch, cfg.Peak.Conditions[0].Slot)
	assert.Equal(t, settlement.SlotDinner, cfg.Peak.Conditions[1].Slot)
}

func TestNormalize_PeakLegacyKeyAndOrMode(t *testing.T) {
	cfg, err := Normalize(Promotion{
		ID: "p5", Type: TypeExcess,
		Params: []byte(`{"threshold": 50, "amount": 500, "peak_condition": {
			"mode": "any",
			"conditions": [{"slot": "lunch_peak", "min_count": 1}]
		}}`),
	})
	require.NoError(t, err)
	require.NotNil(t, cfg.Peak)
	assert.Equal(t, CombineOr, cfg.Peak.Mode)
	assert.Nil(t, cfg.Peak.MinScore)
}

func TestNormalize_MissingFields(t *testing.T) {
	cases := []struct {
		typ    PromotionType
		params string
		want   error
	}{
		{TypeExcess, `{"amount": 1000}`, ErrMissingThreshold},
		{TypeExcess, `{"threshold": 100}`, ErrMissingAmount},
		{TypeMilestone, `{}`, ErrMissingTiers},
		{TypeMilestone, `{"tiers": []}`, ErrMissingTiers},
		{PromotionType("bogus"), `{}`, ErrUnknownType},
	}
	for _, c := range cases {
		_, err := Normalize(Promotion{ID: "p", Type: c.typ, Params: []byte(c.params)})
		require.Error(t, err, "type=%s params=%s", c.typ, c.params)
		assert.ErrorIs(t, err, c.want, "type=%s params=%s", c.typ, c.params)
	}
}

func TestNormalize_UnknownPeakSlotRejected(t *testing.T) {
	_, err := Normalize(Promotion{
		ID: "p6", Type: TypeExcess,
		Params: []byte(`{"threshold": 50, "amount": 500, "peak": {
			"mode": "and",
			"conditions": [{"slot": "브런치피크", "min_count": 1}]
		}}`),
	})
	require.Error(t, err)
}
