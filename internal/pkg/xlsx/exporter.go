package xlsx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
	"github.com/xuri/excelize/v2"
)

const statementSheet = "주간정산"

// fixedHeaders is the statement's column order up to the mission-date
// columns; the remaining columns follow missionTailHeaders. The order is
// fixed and part of the export contract.
var fixedHeaders = []string{
	"라이선스ID",
	"이름",
	"전화뒷자리",
	"지점",
	"주문수",
	"수수료",
	"원천세",
	"프로모션합계",
	"프로모션내역",
}

var missionTailHeaders = []string{
	"정산금액",
	"지원금",
	"차감금액",
	"총정산금액",
	"합계",
	"고용보험",
	"산재보험",
	"시간제보험",
	"소급보험",
	"렌트비",
	"대출상환",
	"선정산차감",
	"실입금액",
}

// Exporter renders a weekly settlement run as an XLSX workbook. Child rows
// are written directly under their parent, marked with the source file.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

func (e *Exporter) Render(result settlement.RunResult) ([]byte, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(statementSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := make([]string, 0, len(fixedHeaders)+len(result.MissionDates)+len(missionTailHeaders))
	headers = append(headers, fixedHeaders...)
	for _, date := range result.MissionDates {
		headers = append(headers, "미션 "+date)
	}
	headers = append(headers, missionTailHeaders...)

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(statementSheet, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	rowIndex := 2
	for _, row := range result.Rows {
		if err := e.writeRow(f, result.MissionDates, row, rowIndex); err != nil {
			return nil, err
		}
		rowIndex++
		for _, child := range row.Children {
			if err := e.writeRow(f, result.MissionDates, child, rowIndex); err != nil {
				return nil, err
			}
			rowIndex++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Exporter) writeRow(f *excelize.File, missionDates []string, row settlement.SettlementRow, rowIndex int) error {
	name := row.Name
	if row.IsChild {
		name = fmt.Sprintf("└ %s (%s)", row.Name, row.SourceFile)
	}

	values := []interface{}{
		orDash(row.LicenseID),
		name,
		orDash(row.PhoneSuffix),
		orDash(row.Branch),
		FormatCount(row.OrderCount),
		FormatAmount(row.Fee),
		FormatAmount(row.Withholding),
		FormatAmount(row.PromotionTotal),
		orDash(promotionBasis(row)),
	}
	for _, date := range missionDates {
		amount, ok := row.MissionByDate[date]
		if !ok {
			values = append(values, "-")
			continue
		}
		values = append(values, FormatAmount(amount))
	}
	values = append(values,
		FormatAmount(row.SettlementAmount),
		FormatAmount(row.SupportTotal),
		FormatAmount(row.Deduction),
		FormatAmount(row.TotalSettlement),
		FormatAmount(row.OverallTotal),
		FormatAmount(row.Employment),
		FormatAmount(row.Accident),
		FormatAmount(row.TimeInsurance),
		FormatAmount(row.RetroInsurance),
		FormatAmount(row.RentCost),
		FormatAmount(row.LoanPayment),
		FormatAmount(row.PaidOffset),
		FormatAmount(row.ActualDeposit),
	)

	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, rowIndex)
		if err := f.SetCellValue(statementSheet, cell, v); err != nil {
			return fmt.Errorf("write row %d: %w", rowIndex, err)
		}
	}
	return nil
}

func promotionBasis(row settlement.SettlementRow) string {
	var lines []string
	for _, p := range row.Promotions {
		lines = append(lines, fmt.Sprintf("%s: %s", p.Name, p.Basis))
	}
	return strings.Join(lines, "\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
