package settlement

import (
	"sort"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/branch"
	"github.com/beginal/jeongsan-admin-sub000/internal/domain/promotion"
	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

var (
	withholdingRate = decimal.RequireFromString("0.033")
	ten             = decimal.NewFromInt(10)
	seven           = decimal.NewFromInt(7)
)

// WithholdingTax applies the statutory 3.3% rate and truncates down to the
// nearest 10 won. The truncation is part of the payout contract and must
// not be replaced with ordinary rounding.
func WithholdingTax(overallTotal decimal.Decimal) decimal.Decimal {
	return overallTotal.Mul(withholdingRate).Div(ten).Floor().Mul(ten)
}

// MatchedRider is the system rider a statement row was matched to through
// the branch roster. Rent and loan deductions only apply when a match
// exists.
type MatchedRider struct {
	ID                string
	Name              string
	DailyRentalFee    decimal.Decimal
	LeaseActive       bool
	WeeklyLoanPayment decimal.Decimal
}

// BuildInput is everything needed to compose one rider's statement row.
type BuildInput struct {
	Rider   *settlement.AggregatedRider
	Summary *settlement.MergedSummary

	// Branches is the branch catalog keyed by branch label as it appears
	// in uploaded rows.
	Branches map[string]branch.Branch
	// PromotionsByBranch holds the normalized configs active for the run's
	// period, keyed by branch label.
	PromotionsByBranch map[string][]promotion.Config

	// Missions is this rider's summed mission bonus per mission date.
	Missions map[string]decimal.Decimal

	Matched    *MatchedRider
	PaidOffset decimal.Decimal
}

// BuildRow composes the parent statement row for one rider, with per-file
// child rows attached when the rider's summary rows came from more than one
// file.
func BuildRow(in BuildInput) settlement.SettlementRow {
	row := settlement.SettlementRow{}

	if in.Summary != nil {
		row.Key = in.Summary.Key
		row.LicenseID = in.Summary.LicenseID
		row.Name = in.Summary.Name
		row.PhoneSuffix = in.Summary.PhoneSuffix
		row.SettlementAmount = in.Summary.SettlementAmount
		row.SupportTotal = in.Summary.SupportTotal
		row.Deduction = in.Summary.Deduction
		row.TotalSettlement = in.Summary.TotalSettlement
		row.Employment = in.Summary.Employment
		row.Accident = in.Summary.Accident
		row.TimeInsurance = in.Summary.TimeInsurance
		row.RetroInsurance = in.Summary.RetroInsurance
	}
	if in.Rider != nil {
		if row.Key == "" {
			row.Key = in.Rider.Key
		}
		if row.Name == "" {
			row.Name = in.Rider.Name
		}
		if row.PhoneSuffix == "" {
			row.PhoneSuffix = in.Rider.PhoneSuffix
		}
		if row.LicenseID == "" {
			row.LicenseID = in.Rider.LicenseID
		}
	}
	if in.Matched != nil {
		row.MatchedRiderID = in.Matched.ID
		row.MatchedRiderName = in.Matched.Name
	}

	row.OrderCount = orderCount(in.Summary, in.Rider)
	branches := involvedBranches(in)
	row.Branch = joinBranches(branches)

	// Parent rows evaluate promotions against the rider's combined
	// histogram across all branches; child rows use the single branch's.
	var peaks map[string]*settlement.PeakCounts
	if in.Rider != nil {
		peaks = in.Rider.PeakByDate
	}
	row.Promotions = evaluateAll(promotionsFor(in.PromotionsByBranch, branches), row.OrderCount, peaks)
	row.PromotionTotal = rewardTotal(row.Promotions)

	row.MissionByDate = in.Missions
	for _, amount := range in.Missions {
		row.MissionTotal = row.MissionTotal.Add(amount)
	}

	row.Fee = parentFee(in, row.OrderCount)
	row.OverallTotal = row.TotalSettlement.Add(row.PromotionTotal).Add(row.MissionTotal)
	row.Withholding = WithholdingTax(row.OverallTotal)

	if in.Matched != nil {
		if in.Matched.LeaseActive {
			row.RentCost = in.Matched.DailyRentalFee.Mul(seven)
		}
		row.LoanPayment = in.Matched.WeeklyLoanPayment
	}
	row.PaidOffset = in.PaidOffset

	// Negative deposits are a legitimate outcome, not an error.
	row.ActualDeposit = row.TotalSettlement.
		Sub(row.Employment).
		Sub(row.Accident).
		Sub(row.Withholding).
		Sub(row.TimeInsurance).
		Sub(row.LoanPayment).
		Sub(row.RentCost).
		Sub(row.Fee).
		Sub(row.PaidOffset).
		Round(0)

	if in.Summary != nil && len(in.Summary.Files) > 1 {
		for _, fs := range in.Summary.Files {
			row.Children = append(row.Children, buildChildRow(in, row, fs))
		}
	}

	return row
}

// buildChildRow recomputes one file's figures independently. Fee and
// withholding are recomputed at this granularity, so child rows are not
// guaranteed to sum exactly to the parent. Rider-level deductions (rent,
// loan, reconciliation offset, missions) stay on the parent only.
func buildChildRow(in BuildInput, parent settlement.SettlementRow, fs settlement.FileSummary) settlement.SettlementRow {
	r := fs.Row
	child := settlement.SettlementRow{
		Key:              parent.Key,
		LicenseID:        parent.LicenseID,
		Name:             parent.Name,
		PhoneSuffix:      parent.PhoneSuffix,
		Branch:           r.Branch,
		SourceFile:       fs.FileName,
		IsChild:          true,
		OrderCount:       r.TotalOrders,
		SettlementAmount: r.SettlementAmount,
		SupportTotal:     r.SupportTotal,
		Deduction:        r.Deduction,
		TotalSettlement:  r.TotalSettlement,
		Employment:       r.Employment,
		Accident:         r.Accident,
		TimeInsurance:    r.TimeInsurance,
		RetroInsurance:   r.RetroInsurance,
	}

	var peaks map[string]*settlement.PeakCounts
	if in.Rider != nil {
		peaks = in.Rider.PeakByBranchDate[r.Branch]
	}
	child.Promotions = evaluateAll(in.PromotionsByBranch[r.Branch], child.OrderCount, peaks)
	child.PromotionTotal = rewardTotal(child.Promotions)

	child.Fee = ComputeFee(feePolicy(in.Branches, r.Branch), child.OrderCount, r.TotalSettlement, r.Fee)
	child.OverallTotal = child.TotalSettlement.Add(child.PromotionTotal)
	child.Withholding = WithholdingTax(child.OverallTotal)

	child.ActualDeposit = child.TotalSettlement.
		Sub(child.Employment).
		Sub(child.Accident).
		Sub(child.Withholding).
		Sub(child.TimeInsurance).
		Sub(child.Fee).
		Round(0)

	return child
}

// orderCount prefers the summary file's explicit total; only without one
// does it fall back to the aggregated branch counts.
func orderCount(summary *settlement.MergedSummary, rider *settlement.AggregatedRider) int {
	if summary != nil && summary.TotalOrders > 0 {
		return summary.TotalOrders
	}
	if rider != nil {
		return rider.TotalOrders
	}
	return 0
}

func involvedBranches(in BuildInput) []string {
	seen := make(map[string]bool)
	var labels []string
	if in.Rider != nil {
		for label := range in.Rider.BranchOrders {
			if !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		}
	}
	if in.Summary != nil {
		for _, fs := range in.Summary.Files {
			if !seen[fs.Row.Branch] {
				seen[fs.Row.Branch] = true
				labels = append(labels, fs.Row.Branch)
			}
		}
	}
	sort.Strings(labels)
	return labels
}

func joinBranches(labels []string) string {
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0]
	}
	joined := labels[0]
	for _, l := range labels[1:] {
		joined += ", " + l
	}
	return joined
}

// promotionsFor collects the active promotions of every involved branch,
// deduplicated by promotion id, in a stable order.
func promotionsFor(byBranch map[string][]promotion.Config, branches []string) []promotion.Config {
	seen := make(map[string]bool)
	var configs []promotion.Config
	for _, label := range branches {
		for _, cfg := range byBranch[label] {
			if seen[cfg.ID] {
				continue
			}
			seen[cfg.ID] = true
			configs = append(configs, cfg)
		}
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].ID < configs[j].ID })
	return configs
}

func evaluateAll(configs []promotion.Config, orderCount int, peaks map[string]*settlement.PeakCounts) []settlement.PromotionResult {
	var results []settlement.PromotionResult
	for _, cfg := range configs {
		results = append(results, EvaluatePromotion(cfg, orderCount, peaks))
	}
	return results
}

func rewardTotal(results []settlement.PromotionResult) decimal.Decimal {
	total := decimal.Zero
	for _, r := range results {
		total = total.Add(r.Reward)
	}
	return total
}

func feePolicy(branches map[string]branch.Branch, label string) *branch.FeePolicy {
	b, ok := branches[label]
	if !ok {
		return nil
	}
	return b.FeePolicy
}

// parentFee computes the parent row's fee from the primary branch's policy,
// the branch with the most aggregated orders. With no aggregated orders or
// no policy, the fee carried over from the merged summary is kept.
func parentFee(in BuildInput, count int) decimal.Decimal {
	carried := decimal.Zero
	base := decimal.Zero
	if in.Summary != nil {
		carried = in.Summary.Fee
		base = in.Summary.TotalSettlement
	}

	primary := ""
	if in.Rider != nil {
		most := -1
		for label, n := range in.Rider.BranchOrders {
			if n > most || (n == most && label < primary) {
				most = n
				primary = label
			}
		}
	} else if in.Summary != nil && len(in.Summary.Files) == 1 {
		primary = in.Summary.Files[0].Row.Branch
	}

	return ComputeFee(feePolicy(in.Branches, primary), count, base, carried)
}
