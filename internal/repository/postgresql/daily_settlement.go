package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
	"github.com/beginal/jeongsan-admin-sub000/internal/pkg/database"
	"github.com/shopspring/decimal"
)

// dailySettlementRepositoryImpl sums amounts already paid out through the
// daily settlement flow, so the weekly statement can offset them.
type dailySettlementRepositoryImpl struct {
	db *database.DB
}

func NewDailySettlementRepository(db *database.DB) settlement.PaidTotalsSource {
	return &dailySettlementRepositoryImpl{db: db}
}

// PaidTotals implements settlement.PaidTotalsSource. The period bounds
// arrive as YYYY-MM-DD strings and are parsed before binding.
func (r *dailySettlementRepositoryImpl) PaidTotals(ctx context.Context, licenseIDs []string, from, to string) (map[string]decimal.Decimal, error) {
	if len(licenseIDs) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, fmt.Errorf("parse period start: %w", err)
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, fmt.Errorf("parse period end: %w", err)
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT license_id, COALESCE(SUM(amount), 0)
		FROM daily_settlements
		WHERE license_id = ANY($1)
		  AND settled_on >= $2
		  AND settled_on <= $3
		GROUP BY license_id
	`

	rows, err := q.Query(ctx, query, licenseIDs, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var licenseID string
		var total decimal.Decimal
		if err := rows.Scan(&licenseID, &total); err != nil {
			return nil, err
		}
		totals[licenseID] = total
	}
	return totals, rows.Err()
}
