package settlement

import (
	"time"

	"github.com/shopspring/decimal"
)

// RiderKey is the canonical identity of one rider within a single settlement
// run. It is either the rider's license id or, when no usable license id was
// seen first, a composite of normalized name and phone suffix.
type RiderKey string

// PeakSlot is one of the five named order-acceptance windows per day.
type PeakSlot int

const (
	SlotMorning PeakSlot = iota
	SlotLunch
	SlotAfternoon
	SlotDinner
	SlotLateNight
)

func (s PeakSlot) String() string {
	switch s {
	case SlotMorning:
		return "morning_peak"
	case SlotLunch:
		return "lunch_peak"
	case SlotAfternoon:
		return "afternoon_peak"
	case SlotDinner:
		return "dinner_peak"
	case SlotLateNight:
		return "late_night_peak"
	}
	return "unknown"
}

// slotLabels maps the raw slot labels that appear in uploaded payroll files
// to their PeakSlot. Both the Korean labels used by the source platform and
// their romanized variants are recognized.
var slotLabels = map[string]PeakSlot{
	"아침피크":            SlotMorning,
	"점심피크":            SlotLunch,
	"오후피크":            SlotAfternoon,
	"저녁피크":            SlotDinner,
	"심야피크":            SlotLateNight,
	"morning_peak":    SlotMorning,
	"lunch_peak":      SlotLunch,
	"afternoon_peak":  SlotAfternoon,
	"dinner_peak":     SlotDinner,
	"late_night_peak": SlotLateNight,
}

// ParseSlot resolves a raw slot label. Unrecognized labels are reported as
// not-ok and are counted toward the histogram total only.
func ParseSlot(label string) (PeakSlot, bool) {
	s, ok := slotLabels[label]
	return s, ok
}

// PeakCounts is a per-date histogram of orders accepted in each named
// time slot. Total also includes orders whose slot label was not recognized.
type PeakCounts struct {
	Morning   int `json:"morning"`
	Lunch     int `json:"lunch"`
	Afternoon int `json:"afternoon"`
	Dinner    int `json:"dinner"`
	LateNight int `json:"late_night"`
	Total     int `json:"total"`
}

// Add records one order for the given raw slot label.
func (p *PeakCounts) Add(label string) {
	p.Total++
	slot, ok := ParseSlot(label)
	if !ok {
		return
	}
	switch slot {
	case SlotMorning:
		p.Morning++
	case SlotLunch:
		p.Lunch++
	case SlotAfternoon:
		p.Afternoon++
	case SlotDinner:
		p.Dinner++
	case SlotLateNight:
		p.LateNight++
	}
}

// Count returns the counter for a named slot.
func (p *PeakCounts) Count(slot PeakSlot) int {
	switch slot {
	case SlotMorning:
		return p.Morning
	case SlotLunch:
		return p.Lunch
	case SlotAfternoon:
		return p.Afternoon
	case SlotDinner:
		return p.Dinner
	case SlotLateNight:
		return p.LateNight
	}
	return 0
}

// RawOrderRow is one delivery order as parsed from an uploaded file's detail
// sheet. Rows are immutable once parsed.
type RawOrderRow struct {
	Branch        string    `json:"branch"`
	LicenseID     string    `json:"license_id"`
	RiderName     string    `json:"rider_name"`
	PhoneSuffix   string    `json:"phone_suffix"`
	OrderNo       string    `json:"order_no"`
	AcceptedAt    time.Time `json:"accepted_at"`
	PeakLabel     string    `json:"peak_label"`
	JudgementDate string    `json:"judgement_date"` // YYYY-MM-DD
}

// RawSummaryRow is one rider's financial summary line from an uploaded
// file. One row per rider per file.
type RawSummaryRow struct {
	Branch           string          `json:"branch"`
	LicenseID        string          `json:"license_id"`
	RiderName        string          `json:"rider_name"`
	PhoneSuffix      string          `json:"phone_suffix"`
	TotalOrders      int             `json:"total_orders"`
	SettlementAmount decimal.Decimal `json:"settlement_amount"`
	SupportTotal     decimal.Decimal `json:"support_total"`
	Deduction        decimal.Decimal `json:"deduction"`
	TotalSettlement  decimal.Decimal `json:"total_settlement"`
	Fee              decimal.Decimal `json:"fee"`
	Employment       decimal.Decimal `json:"employment"`
	Accident         decimal.Decimal `json:"accident"`
	TimeInsurance    decimal.Decimal `json:"time_insurance"`
	RetroInsurance   decimal.Decimal `json:"retro_insurance"`
}

// MissionRow is one per-rider, per-date mission bonus entry.
type MissionRow struct {
	Date        string          `json:"date"` // YYYY-MM-DD
	LicenseID   string          `json:"license_id"`
	RiderName   string          `json:"rider_name"`
	PhoneSuffix string          `json:"phone_suffix"`
	Amount      decimal.Decimal `json:"amount"`
}

// ParsedFile is the structured content of one uploaded payroll workbook.
type ParsedFile struct {
	Name      string          `json:"name"`
	Summaries []RawSummaryRow `json:"summaries"`
	Details   []RawOrderRow   `json:"details"`
	Missions  []MissionRow    `json:"missions"`
}

// Upload is one workbook as received from the wizard, before parsing.
type Upload struct {
	Name     string
	Data     []byte
	Password string
}

// AggregatedRider is the per-rider order aggregate across all uploaded
// files. Built once per run and never mutated after the aggregation phase.
type AggregatedRider struct {
	Key          RiderKey
	LicenseID    string
	Name         string
	PhoneSuffix  string
	TotalOrders  int
	BranchOrders map[string]int
	// PeakByDate keys are judgement dates (YYYY-MM-DD).
	PeakByDate map[string]*PeakCounts
	// PeakByBranchDate restricts the histograms to a single branch label.
	PeakByBranchDate map[string]map[string]*PeakCounts
	// Details is sorted descending by acceptance time for display.
	Details []RawOrderRow
}

// FileSummary is one retained, ungrouped summary row and the file it came
// from, kept for per-file child-row drill-down.
type FileSummary struct {
	FileName string
	Row      RawSummaryRow
}

// MergedSummary is the per-rider sum of all summary rows across files.
type MergedSummary struct {
	Key              RiderKey
	LicenseID        string
	Name             string
	PhoneSuffix      string
	TotalOrders      int
	SettlementAmount decimal.Decimal
	SupportTotal     decimal.Decimal
	Deduction        decimal.Decimal
	TotalSettlement  decimal.Decimal
	Fee              decimal.Decimal
	Employment       decimal.Decimal
	Accident         decimal.Decimal
	TimeInsurance    decimal.Decimal
	RetroInsurance   decimal.Decimal
	Files            []FileSummary
}
