package settlement

import (
	"testing"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryRow(branch, license, name string, orders int, total string) settlement.RawSummaryRow {
	return settlement.RawSummaryRow{
		Branch:           branch,
		LicenseID:        license,
		RiderName:        name,
		TotalOrders:      orders,
		SettlementAmount: decimal.RequireFromString(total),
		SupportTotal:     decimal.NewFromInt(1000),
		Deduction:        decimal.NewFromInt(-500),
		TotalSettlement:  decimal.RequireFromString(total),
		Fee:              decimal.NewFromInt(3000),
		Employment:       decimal.NewFromInt(200),
		Accident:         decimal.NewFromInt(100),
		TimeInsurance:    decimal.NewFromInt(50),
		RetroInsurance:   decimal.NewFromInt(25),
	}
}

func TestSummaryMerger_SumsAcrossFiles(t *testing.T) {
	m := NewSummaryMerger(NewResolver())

	m.Add("week1-gangnam.xlsx", summaryRow("강남", "LIC-1", "김민수 1234", 100, "500000"))
	m.Add("week1-seocho.xlsx", summaryRow("서초", "LIC-1", "김민수 1234", 37, "180000"))

	merged := m.Merged()
	require.Len(t, merged, 1)

	s := merged[settlement.RiderKey("LIC-1")]
	require.NotNil(t, s)
	assert.Equal(t, 137, s.TotalOrders)
	assert.Equal(t, "680000", s.SettlementAmount.String())
	assert.Equal(t, "680000", s.TotalSettlement.String())
	assert.Equal(t, "2000", s.SupportTotal.String())
	assert.Equal(t, "-1000", s.Deduction.String())
	assert.Equal(t, "6000", s.Fee.String())
	assert.Equal(t, "400", s.Employment.String())
	assert.Equal(t, "200", s.Accident.String())
	assert.Equal(t, "100", s.TimeInsurance.String())
	assert.Equal(t, "50", s.RetroInsurance.String())

	// Per-file rows are retained for drill-down, tagged with their source.
	require.Len(t, s.Files, 2)
	assert.Equal(t, "week1-gangnam.xlsx", s.Files[0].FileName)
	assert.Equal(t, "week1-seocho.xlsx", s.Files[1].FileName)
}

func TestSummaryMerger_OrderIndependentTotals(t *testing.T) {
	rows := []struct {
		file string
		row  settlement.RawSummaryRow
	}{
		{"a.xlsx", summaryRow("강남", "LIC-1", "김민수 1234", 100, "500000")},
		{"b.xlsx", summaryRow("서초", "LIC-1", "김민수 1234", 40, "200000")},
		{"a.xlsx", summaryRow("강남", "", "박지훈 5678", 60, "300000")},
	}

	forward := NewSummaryMerger(NewResolver())
	for _, r := range rows {
		forward.Add(r.file, r.row)
	}
	backward := NewSummaryMerger(NewResolver())
	for i := len(rows) - 1; i >= 0; i-- {
		backward.Add(rows[i].file, rows[i].row)
	}

	a := forward.Merged()
	b := backward.Merged()
	require.Equal(t, len(a), len(b))
	for key, sa := range a {
		sb := b[key]
		require.NotNil(t, sb, "missing rider %s", key)
		assert.Equal(t, sa.TotalOrders, sb.TotalOrders)
		assert.True(t, sa.TotalSettlement.Equal(sb.TotalSettlement))
		assert.True(t, sa.Fee.Equal(sb.Fee))
	}
}

func TestSummaryMerger_SharesResolverWithAggregator(t *testing.T) {
	resolver := NewResolver()
	merger := NewSummaryMerger(resolver)
	agg := NewOrderAggregator(resolver)

	// Summary carries the license id; the detail row for the same person
	// does not. Both must land under the same key.
	merger.Add("a.xlsx", summaryRow("강남", "LIC-9", "최은지 4321", 10, "50000"))
	agg.Add(settlement.RawOrderRow{
		Branch:        "강남",
		RiderName:     "최은지 4321",
		PeakLabel:     "점심피크",
		JudgementDate: "2025-08-18",
	})

	merged := merger.Merged()
	riders := agg.Finish()
	require.Len(t, merged, 1)
	require.Len(t, riders, 1)
	_, ok := riders[settlement.RiderKey("LIC-9")]
	assert.True(t, ok, "detail row should resolve to the summary's license id key")
}
