package settlement

import (
	"testing"
	"time"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderRow(branch, license, name, slot, date string, accepted time.Time) settlement.RawOrderRow {
	return settlement.RawOrderRow{
		Branch:        branch,
		LicenseID:     license,
		RiderName:     name,
		AcceptedAt:    accepted,
		PeakLabel:     slot,
		JudgementDate: date,
	}
}

func TestOrderAggregator_CountsAndHistograms(t *testing.T) {
	agg := NewOrderAggregator(NewResolver())

	base := time.Date(2025, 8, 18, 11, 0, 0, 0, time.UTC)
	agg.Add(orderRow("강남", "LIC-1", "김민수 1234", "점심피크", "2025-08-18", base))
	agg.Add(orderRow("강남", "LIC-1", "김민수 1234", "저녁피크", "2025-08-18", base.Add(7*time.Hour)))
	agg.Add(orderRow("서초", "LIC-1", "김민수 1234", "점심피크", "2025-08-19", base.Add(24*time.Hour)))

	riders := agg.Finish()
	require.Len(t, riders, 1)

	r := riders[settlement.RiderKey("LIC-1")]
	require.NotNil(t, r)
	assert.Equal(t, 3, r.TotalOrders)
	assert.Equal(t, 2, r.BranchOrders["강남"])
	assert.Equal(t, 1, r.BranchOrders["서초"])

	day1 := r.PeakByDate["2025-08-18"]
	require.NotNil(t, day1)
	assert.Equal(t, 1, day1.Lunch)
	assert.Equal(t, 1, day1.Dinner)
	assert.Equal(t, 2, day1.Total)

	branchDay := r.PeakByBranchDate["서초"]["2025-08-19"]
	require.NotNil(t, branchDay)
	assert.Equal(t, 1, branchDay.Lunch)
	assert.Equal(t, 1, branchDay.Total)
}

func TestOrderAggregator_UnknownSlotCountsTotalOnly(t *testing.T) {
	agg := NewOrderAggregator(NewResolver())
	agg.Add(orderRow("강남", "LIC-1", "김민수 1234", "새벽배송", "2025-08-18", time.Now()))

	riders := agg.Finish()
	r := riders[settlement.RiderKey("LIC-1")]
	require.NotNil(t, r)

	counts := r.PeakByDate["2025-08-18"]
	require.NotNil(t, counts)
	assert.Equal(t, 1, counts.Total)
	assert.Equal(t, 0, counts.Morning+counts.Lunch+counts.Afternoon+counts.Dinner+counts.LateNight)
}

func TestOrderAggregator_DetailsSortedNewestFirst(t *testing.T) {
	agg := NewOrderAggregator(NewResolver())
	base := time.Date(2025, 8, 18, 9, 0, 0, 0, time.UTC)

	agg.Add(orderRow("강남", "LIC-1", "김민수 1234", "점심피크", "2025-08-18", base))
	agg.Add(orderRow("강남", "LIC-1", "김민수 1234", "점심피크", "2025-08-18", base.Add(2*time.Hour)))
	agg.Add(orderRow("강남", "LIC-1", "김민수 1234", "점심피크", "2025-08-18", base.Add(time.Hour)))

	r := agg.Finish()[settlement.RiderKey("LIC-1")]
	require.NotNil(t, r)
	require.Len(t, r.Details, 3)
	assert.True(t, r.Details[0].AcceptedAt.After(r.Details[1].AcceptedAt))
	assert.True(t, r.Details[1].AcceptedAt.After(r.Details[2].AcceptedAt))
}

func TestOrderAggregator_OrderIndependent(t *testing.T) {
	base := time.Date(2025, 8, 18, 9, 0, 0, 0, time.UTC)
	rows := []settlement.RawOrderRow{
		orderRow("강남", "LIC-1", "김민수 1234", "점심피크", "2025-08-18", base),
		orderRow("서초", "LIC-1", "김민수 1234", "저녁피크", "2025-08-19", base.Add(30*time.Hour)),
		orderRow("강남", "", "박지훈 5678", "점심피크", "2025-08-18", base.Add(time.Hour)),
	}

	forward := NewOrderAggregator(NewResolver())
	for _, row := range rows {
		forward.Add(row)
	}
	backward := NewOrderAggregator(NewResolver())
	for i := len(rows) - 1; i >= 0; i-- {
		backward.Add(rows[i])
	}

	a := forward.Finish()
	b := backward.Finish()
	require.Equal(t, len(a), len(b))
	for key, ra := range a {
		rb := b[key]
		require.NotNil(t, rb, "missing rider %s", key)
		assert.Equal(t, ra.TotalOrders, rb.TotalOrders)
		assert.Equal(t, ra.BranchOrders, rb.BranchOrders)
		assert.Equal(t, ra.PeakByDate, rb.PeakByDate)
	}
}
