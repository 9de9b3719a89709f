package settlement

import (
	"testing"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/branch"
	"github.com/beginal/jeongsan-admin-sub000/internal/domain/promotion"
	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithholdingTax(t *testing.T) {
	cases := []struct {
		total string
		want  string
	}{
		{"103450", "3410"}, // 103450*0.033 = 3413.85 -> 3410
		{"0", "0"},
		{"100", "0"},   // 3.3 -> 0
		{"1000000", "33000"},
		{"999999", "32990"}, // 32999.967 -> 32990
	}
	for _, c := range cases {
		got := WithholdingTax(decimal.RequireFromString(c.total))
		assert.Equal(t, c.want, got.String(), "total=%s", c.total)
	}
}

func TestWithholdingTax_MultipleOfTen(t *testing.T) {
	for i := int64(0); i < 100000; i += 1357 {
		tax := WithholdingTax(decimal.NewFromInt(i))
		assert.False(t, tax.IsNegative(), "total=%d", i)
		assert.True(t, tax.Mod(decimal.NewFromInt(10)).IsZero(), "total=%d tax=%s", i, tax)
	}
}

func builderFixture() BuildInput {
	summary := &settlement.MergedSummary{
		Key:              "LIC-1",
		LicenseID:        "LIC-1",
		Name:             "김민수",
		PhoneSuffix:      "1234",
		TotalOrders:      137,
		SettlementAmount: decimal.NewFromInt(680000),
		SupportTotal:     decimal.NewFromInt(2000),
		Deduction:        decimal.NewFromInt(-1000),
		TotalSettlement:  decimal.NewFromInt(680000),
		Fee:              decimal.NewFromInt(6000),
		Employment:       decimal.NewFromInt(400),
		Accident:         decimal.NewFromInt(200),
		TimeInsurance:    decimal.NewFromInt(100),
		RetroInsurance:   decimal.NewFromInt(50),
		Files: []settlement.FileSummary{
			{FileName: "gangnam.xlsx", Row: settlement.RawSummaryRow{
				Branch: "강남", TotalOrders: 100,
				SettlementAmount: decimal.NewFromInt(500000),
				TotalSettlement:  decimal.NewFromInt(500000),
				Fee:              decimal.NewFromInt(3000),
			}},
			{FileName: "seocho.xlsx", Row: settlement.RawSummaryRow{
				Branch: "서초", TotalOrders: 37,
				SettlementAmount: decimal.NewFromInt(180000),
				TotalSettlement:  decimal.NewFromInt(180000),
				Fee:              decimal.NewFromInt(3000),
			}},
		},
	}
	rider := &settlement.AggregatedRider{
		Key:          "LIC-1",
		LicenseID:    "LIC-1",
		Name:         "김민수",
		PhoneSuffix:  "1234",
		TotalOrders:  137,
		BranchOrders: map[string]int{"강남": 100, "서초": 37},
		PeakByDate:   map[string]*settlement.PeakCounts{},
		PeakByBranchDate: map[string]map[string]*settlement.PeakCounts{
			"강남": {}, "서초": {},
		},
	}
	return BuildInput{Rider: rider, Summary: summary}
}

func TestBuildRow_ComposesParentRow(t *testing.T) {
	in := builderFixture()
	in.PromotionsByBranch = map[string][]promotion.Config{
		"강남": {{
			ID: "p1", Name: "초과", Type: promotion.TypeExcess,
			Threshold: 100, AmountPerExcess: decimal.NewFromInt(1000),
		}},
	}
	in.Missions = map[string]decimal.Decimal{
		"2025-08-18": decimal.NewFromInt(5000),
		"2025-08-20": decimal.NewFromInt(2500),
	}
	in.Matched = &MatchedRider{
		ID: "r-1", Name: "김민수",
		DailyRentalFee:    decimal.NewFromInt(10000),
		LeaseActive:       true,
		WeeklyLoanPayment: decimal.NewFromInt(20000),
	}
	in.PaidOffset = decimal.NewFromInt(150000)

	row := BuildRow(in)

	assert.Equal(t, 137, row.OrderCount)
	assert.Equal(t, "강남, 서초", row.Branch)
	assert.Equal(t, "37000", row.PromotionTotal.String())
	assert.Equal(t, "7500", row.MissionTotal.String())

	// 680000 + 37000 + 7500
	assert.Equal(t, "724500", row.OverallTotal.String())
	// 724500*0.033 = 23908.5 -> 23900
	assert.Equal(t, "23900", row.Withholding.String())
	assert.Equal(t, "70000", row.RentCost.String())
	assert.Equal(t, "20000", row.LoanPayment.String())

	// 680000 - 400 - 200 - 23900 - 100 - 20000 - 70000 - 6000 - 150000
	assert.Equal(t, "409400", row.ActualDeposit.String())
}

func TestBuildRow_NoSummaryTotalFallsBackToBranchCounts(t *testing.T) {
	in := builderFixture()
	in.Summary.TotalOrders = 0

	row := BuildRow(in)
	assert.Equal(t, 137, row.OrderCount)
}

func TestBuildRow_NegativeDepositIsAllowed(t *testing.T) {
	in := builderFixture()
	in.PaidOffset = decimal.NewFromInt(2000000)

	row := BuildRow(in)
	assert.True(t, row.ActualDeposit.IsNegative())
}

func TestBuildRow_ChildRowsPerSourceFile(t *testing.T) {
	in := builderFixture()
	in.Branches = map[string]branch.Branch{
		"강남": {Name: "강남", FeePolicy: &branch.FeePolicy{
			Type: branch.FeePerCase, Value: decimal.NewFromInt(100),
		}},
	}

	row := BuildRow(in)
	require.Len(t, row.Children, 2)

	gangnam := row.Children[0]
	assert.True(t, gangnam.IsChild)
	assert.Equal(t, "gangnam.xlsx", gangnam.SourceFile)
	assert.Equal(t, "강남", gangnam.Branch)
	assert.Equal(t, 100, gangnam.OrderCount)
	// Per-case policy recomputed at file granularity: 100 * 100.
	assert.Equal(t, "10000", gangnam.Fee.String())
	// 500000*0.033 = 16500 -> 16500
	assert.Equal(t, "16500", gangnam.Withholding.String())

	seocho := row.Children[1]
	assert.Equal(t, "seocho.xlsx", seocho.SourceFile)
	// No policy for 서초: carried fee kept.
	assert.Equal(t, "3000", seocho.Fee.String())
}

func TestBuildRow_SingleFileHasNoChildren(t *testing.T) {
	in := builderFixture()
	in.Summary.Files = in.Summary.Files[:1]

	row := BuildRow(in)
	assert.Empty(t, row.Children)
}

func TestBuildRow_NoMatchNoRentOrLoan(t *testing.T) {
	in := builderFixture()
	row := BuildRow(in)

	assert.True(t, row.RentCost.IsZero())
	assert.True(t, row.LoanPayment.IsZero())
	assert.Empty(t, row.MatchedRiderID)
}

func TestBuildRow_LeaseInactiveNoRent(t *testing.T) {
	in := builderFixture()
	in.Matched = &MatchedRider{
		ID: "r-1", Name: "김민수",
		DailyRentalFee: decimal.NewFromInt(10000),
		LeaseActive:    false,
	}

	row := BuildRow(in)
	assert.True(t, row.RentCost.IsZero())
	assert.Equal(t, "r-1", row.MatchedRiderID)
}
