package settlement

import (
	"github.com/beginal/jeongsan-admin-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// PromotionResult is the outcome of evaluating one promotion for one row.
type PromotionResult struct {
	PromotionID string          `json:"promotion_id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Reward      decimal.Decimal `json:"reward"`
	Basis       string          `json:"basis"`
	// PeakScore is set when the promotion carries a peak-time precondition:
	// the number of dates on which the conditions were satisfied.
	PeakScore *int `json:"peak_score,omitempty"`
	PeakMet   bool `json:"peak_met"`
}

// SettlementRow is one rider's final weekly payout line. A parent row covers
// the rider across all uploaded files; when the rider's rows came from more
// than one file, per-file child rows are attached for drill-down.
type SettlementRow struct {
	Key             RiderKey `json:"key"`
	LicenseID       string   `json:"license_id"`
	Name            string   `json:"name"`
	PhoneSuffix     string   `json:"phone_suffix"`
	Branch          string   `json:"branch"`
	MatchedRiderID  string   `json:"matched_rider_id,omitempty"`
	MatchedRiderName string   `json:"matched_rider_name,omitempty"`
	SourceFile      string   `json:"source_file,omitempty"`
	IsChild         bool     `json:"is_child"`

	OrderCount int `json:"order_count"`

	SettlementAmount decimal.Decimal `json:"settlement_amount"`
	SupportTotal     decimal.Decimal `json:"support_total"`
	Deduction        decimal.Decimal `json:"deduction"`
	TotalSettlement  decimal.Decimal `json:"total_settlement"`

	Fee         decimal.Decimal `json:"fee"`
	Withholding decimal.Decimal `json:"withholding"`

	Promotions     []PromotionResult `json:"promotions,omitempty"`
	PromotionTotal decimal.Decimal   `json:"promotion_total"`

	// MissionByDate holds the summed mission bonus per mission date.
	MissionByDate map[string]decimal.Decimal `json:"mission_by_date,omitempty"`
	MissionTotal  decimal.Decimal            `json:"mission_total"`

	OverallTotal decimal.Decimal `json:"overall_total"`

	Employment     decimal.Decimal `json:"employment"`
	Accident       decimal.Decimal `json:"accident"`
	TimeInsurance  decimal.Decimal `json:"time_insurance"`
	RetroInsurance decimal.Decimal `json:"retro_insurance"`

	RentCost      decimal.Decimal `json:"rent_cost"`
	LoanPayment   decimal.Decimal `json:"loan_payment"`
	PaidOffset    decimal.Decimal `json:"paid_offset"`
	ActualDeposit decimal.Decimal `json:"actual_deposit"`

	Children []SettlementRow `json:"children,omitempty"`
}

// RunRequest carries one wizard invocation: the uploaded workbooks in the
// order they were supplied.
type RunRequest struct {
	Uploads []Upload
}

func (r *RunRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Uploads) == 0 {
		errs = append(errs, validator.ValidationError{Field: "files", Message: "at least one file is required"})
	}
	for _, u := range r.Uploads {
		if u.Name == "" {
			errs = append(errs, validator.ValidationError{Field: "files", Message: "file name is required"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RunResult is the full output of one pipeline run.
type RunResult struct {
	Rows []SettlementRow `json:"rows"`
	// MissionDates is every distinct mission date seen in the batch, sorted
	// ascending; the export renders one column per date.
	MissionDates []string `json:"mission_dates"`
	// PeriodStart/PeriodEnd are the min/max judgement dates across all
	// included orders, the span used for the reconciliation lookup.
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	// Warnings carries non-fatal degradations, such as a failed
	// reconciliation lookup.
	Warnings []string `json:"warnings,omitempty"`
}
