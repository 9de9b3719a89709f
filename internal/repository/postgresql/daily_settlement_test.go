package postgresql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
)

var _ settlement.PaidTotalsSource = (*dailySettlementRepositoryImpl)(nil)

func TestPaidTotals_EmptyLicenseIDs(t *testing.T) {
	repo := &dailySettlementRepositoryImpl{}

	totals, err := repo.PaidTotals(context.Background(), nil, "2024-01-01", "2024-01-07")

	assert.NoError(t, err)
	assert.Empty(t, totals)
}

func TestPaidTotals_InvalidPeriodBounds(t *testing.T) {
	repo := &dailySettlementRepositoryImpl{}
	ids := []string{"11-22-334455"}

	_, err := repo.PaidTotals(context.Background(), ids, "not-a-date", "2024-01-07")
	assert.ErrorContains(t, err, "parse period start")

	_, err = repo.PaidTotals(context.Background(), ids, "2024-01-01", "2024/01/07")
	assert.ErrorContains(t, err, "parse period end")
}
