package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet name candidates per section, checked in order. Files exported from
// the source payroll platform use the Korean names; manually resaved files
// sometimes carry the default english ones.
var (
	summarySheets = []string{"정산내역", "정산", "summary"}
	detailSheets  = []string{"배달내역", "상세내역", "details"}
	missionSheets = []string{"미션", "미션내역", "missions"}
)

// Column header aliases, normalized (trimmed, lowercased).
var (
	headerBranch    = []string{"지점", "지점명", "branch"}
	headerLicense   = []string{"라이선스id", "라이선스", "license_id"}
	headerName      = []string{"이름", "기사명", "라이더명", "name"}
	headerSuffix    = []string{"전화뒷자리", "뒷자리", "phone_suffix"}
	headerOrders    = []string{"총주문수", "주문수", "total_orders"}
	headerSettle    = []string{"정산금액", "settlement_amount"}
	headerSupport   = []string{"지원금", "지원금합계", "support_total"}
	headerDeduction = []string{"차감금액", "차감", "deduction"}
	headerTotal     = []string{"총정산금액", "total_settlement"}
	headerFee       = []string{"수수료", "fee"}
	headerEmploy    = []string{"고용보험", "employment"}
	headerAccident  = []string{"산재보험", "accident"}
	headerTimeIns   = []string{"시간제보험", "time_insurance"}
	headerRetro     = []string{"소급보험", "retro_insurance"}
	headerOrderNo   = []string{"주문번호", "order_no"}
	headerAccepted  = []string{"수락시간", "accepted_at"}
	headerPeak      = []string{"피크시간대", "피크", "peak"}
	headerJudgement = []string{"기준일자", "기준일", "judgement_date"}
	headerDate      = []string{"일자", "날짜", "date"}
	headerAmount    = []string{"금액", "amount"}
)

// Parser reads one uploaded payroll workbook into structured rows. A
// missing detail or mission sheet yields empty slices; a missing summary
// sheet is a parse failure since the statement cannot be built without it.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(_ context.Context, upload settlement.Upload) (settlement.ParsedFile, error) {
	f, err := excelize.OpenReader(bytes.NewReader(upload.Data), excelize.Options{Password: upload.Password})
	if err != nil {
		return settlement.ParsedFile{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	parsed := settlement.ParsedFile{Name: upload.Name}

	summaryRows, ok, err := sheetRows(f, summarySheets)
	if err != nil {
		return settlement.ParsedFile{}, err
	}
	if !ok {
		return settlement.ParsedFile{}, fmt.Errorf("workbook has no summary sheet")
	}
	parsed.Summaries, err = parseSummaries(summaryRows)
	if err != nil {
		return settlement.ParsedFile{}, err
	}

	if detailRows, ok, err := sheetRows(f, detailSheets); err != nil {
		return settlement.ParsedFile{}, err
	} else if ok {
		parsed.Details, err = parseDetails(detailRows)
		if err != nil {
			return settlement.ParsedFile{}, err
		}
	}

	if missionRows, ok, err := sheetRows(f, missionSheets); err != nil {
		return settlement.ParsedFile{}, err
	} else if ok {
		parsed.Missions, err = parseMissions(missionRows)
		if err != nil {
			return settlement.ParsedFile{}, err
		}
	}

	return parsed, nil
}

func sheetRows(f *excelize.File, candidates []string) ([][]string, bool, error) {
	for _, name := range candidates {
		idx, err := f.GetSheetIndex(name)
		if err != nil || idx < 0 {
			continue
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, false, fmt.Errorf("read sheet %s: %w", name, err)
		}
		return rows, true, nil
	}
	return nil, false, nil
}

// headerIndex maps each known column concept to its position in the header
// row. Unknown columns are ignored.
type headerIndex map[string]int

func indexHeaders(header []string) headerIndex {
	idx := make(headerIndex)
	set := func(aliases []string, col int, raw string) {
		for _, a := range aliases {
			if raw == a {
				if _, taken := idx[aliases[0]]; !taken {
					idx[aliases[0]] = col
				}
				return
			}
		}
	}
	for col, raw := range header {
		normalized := NormalizeHeader(raw)
		for _, aliases := range [][]string{
			headerBranch, headerLicense, headerName, headerSuffix,
			headerOrders, headerSettle, headerSupport, headerDeduction,
			headerTotal, headerFee, headerEmploy, headerAccident,
			headerTimeIns, headerRetro, headerOrderNo, headerAccepted,
			headerPeak, headerJudgement, headerDate, headerAmount,
		} {
			set(aliases, col, normalized)
		}
	}
	return idx
}

// NormalizeHeader canonicalizes a raw header cell for alias matching.
func NormalizeHeader(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func (h headerIndex) cell(row []string, aliases []string) string {
	col, ok := h[aliases[0]]
	if !ok || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// ParseAmount reads a currency cell: grouped thousands and the "-"
// zero/absent marker are accepted.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" || cleaned == "-" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return d, nil
}

func parseCount(raw string) (int, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" || cleaned == "-" {
		return 0, nil
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q: %w", raw, err)
	}
	return n, nil
}

var acceptedAtLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006/01/02 15:04:05",
}

func parseAcceptedAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range acceptedAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "2006.01.02"}

func parseDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("invalid date %q", raw)
}

func parseSummaries(rows [][]string) ([]settlement.RawSummaryRow, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("summary sheet is empty")
	}
	idx := indexHeaders(rows[0])

	var out []settlement.RawSummaryRow
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		s := settlement.RawSummaryRow{
			Branch:      idx.cell(row, headerBranch),
			LicenseID:   idx.cell(row, headerLicense),
			RiderName:   idx.cell(row, headerName),
			PhoneSuffix: idx.cell(row, headerSuffix),
		}
		var err error
		if s.TotalOrders, err = parseCount(idx.cell(row, headerOrders)); err != nil {
			return nil, fmt.Errorf("summary row %d: %w", i+2, err)
		}
		amounts := []struct {
			dst     *decimal.Decimal
			aliases []string
		}{
			{&s.SettlementAmount, headerSettle},
			{&s.SupportTotal, headerSupport},
			{&s.Deduction, headerDeduction},
			{&s.TotalSettlement, headerTotal},
			{&s.Fee, headerFee},
			{&s.Employment, headerEmploy},
			{&s.Accident, headerAccident},
			{&s.TimeInsurance, headerTimeIns},
			{&s.RetroInsurance, headerRetro},
		}
		for _, a := range amounts {
			if *a.dst, err = ParseAmount(idx.cell(row, a.aliases)); err != nil {
				return nil, fmt.Errorf("summary row %d: %w", i+2, err)
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func parseDetails(rows [][]string) ([]settlement.RawOrderRow, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	idx := indexHeaders(rows[0])

	var out []settlement.RawOrderRow
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		d := settlement.RawOrderRow{
			Branch:      idx.cell(row, headerBranch),
			LicenseID:   idx.cell(row, headerLicense),
			RiderName:   idx.cell(row, headerName),
			PhoneSuffix: idx.cell(row, headerSuffix),
			OrderNo:     idx.cell(row, headerOrderNo),
			PeakLabel:   idx.cell(row, headerPeak),
		}
		var err error
		if d.AcceptedAt, err = parseAcceptedAt(idx.cell(row, headerAccepted)); err != nil {
			return nil, fmt.Errorf("detail row %d: %w", i+2, err)
		}
		if d.JudgementDate, err = parseDate(idx.cell(row, headerJudgement)); err != nil {
			return nil, fmt.Errorf("detail row %d: %w", i+2, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func parseMissions(rows [][]string) ([]settlement.MissionRow, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	idx := indexHeaders(rows[0])

	var out []settlement.MissionRow
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		m := settlement.MissionRow{
			LicenseID:   idx.cell(row, headerLicense),
			RiderName:   idx.cell(row, headerName),
			PhoneSuffix: idx.cell(row, headerSuffix),
		}
		var err error
		if m.Date, err = parseDate(idx.cell(row, headerDate)); err != nil {
			return nil, fmt.Errorf("mission row %d: %w", i+2, err)
		}
		if m.Amount, err = ParseAmount(idx.cell(row, headerAmount)); err != nil {
			return nil, fmt.Errorf("mission row %d: %w", i+2, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
