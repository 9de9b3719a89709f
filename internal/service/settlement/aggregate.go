package settlement

import (
	"sort"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
)

// OrderAggregator builds the per-rider order aggregates for one run. It
// shares the run's Resolver with the summary merger so both key riders
// identically.
type OrderAggregator struct {
	resolver *Resolver
	riders   map[settlement.RiderKey]*settlement.AggregatedRider
}

func NewOrderAggregator(resolver *Resolver) *OrderAggregator {
	return &OrderAggregator{
		resolver: resolver,
		riders:   make(map[settlement.RiderKey]*settlement.AggregatedRider),
	}
}

func (a *OrderAggregator) rider(key settlement.RiderKey, row settlement.RawOrderRow) *settlement.AggregatedRider {
	r, ok := a.riders[key]
	if ok {
		return r
	}
	name, suffix := row.RiderName, row.PhoneSuffix
	if suffix == "" {
		name, suffix = SplitSuffix(row.RiderName)
	}
	r = &settlement.AggregatedRider{
		Key:              key,
		Name:             name,
		PhoneSuffix:      suffix,
		BranchOrders:     make(map[string]int),
		PeakByDate:       make(map[string]*settlement.PeakCounts),
		PeakByBranchDate: make(map[string]map[string]*settlement.PeakCounts),
	}
	a.riders[key] = r
	return r
}

// Add consumes one raw order row.
func (a *OrderAggregator) Add(row settlement.RawOrderRow) {
	key := a.resolver.Resolve(row.LicenseID, row.RiderName, row.PhoneSuffix)
	r := a.rider(key, row)

	if r.LicenseID == "" && !isPlaceholderLicense(row.LicenseID) {
		r.LicenseID = row.LicenseID
	}

	r.BranchOrders[row.Branch]++

	byDate := r.PeakByDate[row.JudgementDate]
	if byDate == nil {
		byDate = &settlement.PeakCounts{}
		r.PeakByDate[row.JudgementDate] = byDate
	}
	byDate.Add(row.PeakLabel)

	branchDates := r.PeakByBranchDate[row.Branch]
	if branchDates == nil {
		branchDates = make(map[string]*settlement.PeakCounts)
		r.PeakByBranchDate[row.Branch] = branchDates
	}
	byBranchDate := branchDates[row.JudgementDate]
	if byBranchDate == nil {
		byBranchDate = &settlement.PeakCounts{}
		branchDates[row.JudgementDate] = byBranchDate
	}
	byBranchDate.Add(row.PeakLabel)

	r.Details = append(r.Details, row)
}

// Finish freezes the aggregates. TotalOrders is set to the sum of branch
// counts; the builder overrides it with the summary file's explicit total
// when one exists. Detail lists are sorted newest first for display.
func (a *OrderAggregator) Finish() map[settlement.RiderKey]*settlement.AggregatedRider {
	for _, r := range a.riders {
		total := 0
		for _, n := range r.BranchOrders {
			total += n
		}
		r.TotalOrders = total

		details := r.Details
		sort.SliceStable(details, func(i, j int) bool {
			return details[i].AcceptedAt.After(details[j].AcceptedAt)
		})
	}
	return a.riders
}
