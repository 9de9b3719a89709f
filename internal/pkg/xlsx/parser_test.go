package xlsx

import (
	"bytes"
	"context"
	"testing"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, sheets map[string][][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range rows {
			for c, val := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(name, cell, val))
			}
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestParseWorkbook(t *testing.T) {
	data := buildWorkbook(t, map[string][][]any{
		"정산내역": {
			{"지점", "라이선스ID", "이름", "전화뒷자리", "총주문수", "정산금액", "지원금", "차감금액", "총정산금액", "수수료", "고용보험", "산재보험", "시간제보험", "소급보험"},
			{"강남지점", "LIC-1", "김민준", "1234", "137", "680,000", "20,000", "5,000", "695,000", "14,454", "6,200", "5,100", "-", "0"},
			{"", "", "", "", "", "", "", "", "", "", "", "", "", ""},
			{"서초지점", "LIC-2", "이서연", "9876", "52", "250,000", "-", "-", "250,000", "3,000", "2,100", "1,800", "-", "-"},
		},
		"배달내역": {
			{"지점", "라이선스ID", "이름", "주문번호", "수락시간", "피크시간대", "기준일자"},
			{"강남지점", "LIC-1", "김민준", "ORD-1", "2026-08-24 12:10:00", "점심피크", "2026-08-24"},
			{"강남지점", "LIC-1", "김민준", "ORD-2", "2026-08-24 19:05:00", "저녁피크", "2026-08-24"},
		},
		"미션": {
			{"일자", "라이선스ID", "이름", "금액"},
			{"2026-08-25", "LIC-1", "김민준", "15,000"},
		},
	})

	parsed, err := NewParser().Parse(context.Background(), settlement.Upload{Name: "week-35.xlsx", Data: data})
	require.NoError(t, err)

	assert.Equal(t, "week-35.xlsx", parsed.Name)

	require.Len(t, parsed.Summaries, 2)
	first := parsed.Summaries[0]
	assert.Equal(t, "강남지점", first.Branch)
	assert.Equal(t, "LIC-1", first.LicenseID)
	assert.Equal(t, "김민준", first.RiderName)
	assert.Equal(t, "1234", first.PhoneSuffix)
	assert.Equal(t, 137, first.TotalOrders)
	assert.True(t, first.SettlementAmount.Equal(decimal.NewFromInt(680000)))
	assert.True(t, first.TimeInsurance.IsZero())
	assert.Equal(t, "이서연", parsed.Summaries[1].RiderName)

	require.Len(t, parsed.Details, 2)
	assert.Equal(t, "ORD-1", parsed.Details[0].OrderNo)
	assert.Equal(t, "점심피크", parsed.Details[0].PeakLabel)
	assert.Equal(t, "2026-08-24", parsed.Details[0].JudgementDate)
	assert.Equal(t, 12, parsed.Details[0].AcceptedAt.Hour())

	require.Len(t, parsed.Missions, 1)
	assert.Equal(t, "2026-08-25", parsed.Missions[0].Date)
	assert.True(t, parsed.Missions[0].Amount.Equal(decimal.NewFromInt(15000)))
}

func TestParseHeaderAliases(t *testing.T) {
	data := buildWorkbook(t, map[string][][]any{
		"summary": {
			{"지점명", "라이선스", "기사명", "뒷자리", "주문수", "정산금액", "총정산금액"},
			{"강남지점", "LIC-3", "박지후", "5555", "40", "180,000", "180,000"},
		},
	})

	parsed, err := NewParser().Parse(context.Background(), settlement.Upload{Name: "resaved.xlsx", Data: data})
	require.NoError(t, err)

	require.Len(t, parsed.Summaries, 1)
	row := parsed.Summaries[0]
	assert.Equal(t, "강남지점", row.Branch)
	assert.Equal(t, "LIC-3", row.LicenseID)
	assert.Equal(t, "박지후", row.RiderName)
	assert.Equal(t, "5555", row.PhoneSuffix)
	assert.Equal(t, 40, row.TotalOrders)
	assert.Empty(t, parsed.Details)
	assert.Empty(t, parsed.Missions)
}

func TestParseMissingSummarySheet(t *testing.T) {
	data := buildWorkbook(t, map[string][][]any{
		"배달내역": {
			{"지점", "라이선스ID", "이름", "주문번호", "수락시간", "피크시간대", "기준일자"},
		},
	})

	_, err := NewParser().Parse(context.Background(), settlement.Upload{Name: "broken.xlsx", Data: data})
	assert.ErrorContains(t, err, "summary sheet")
}

func TestParseRejectsBadAmount(t *testing.T) {
	data := buildWorkbook(t, map[string][][]any{
		"정산내역": {
			{"지점", "라이선스ID", "이름", "총주문수", "정산금액"},
			{"강남지점", "LIC-1", "김민준", "10", "not-a-number"},
		},
	})

	_, err := NewParser().Parse(context.Background(), settlement.Upload{Name: "bad.xlsx", Data: data})
	assert.ErrorContains(t, err, "summary row 2")
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewParser().Parse(context.Background(), settlement.Upload{Name: "junk.xlsx", Data: []byte("not a zip")})
	assert.Error(t, err)
}
