package settlement

import (
	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
)

// SummaryMerger sums each file's per-rider summary rows into per-rider
// totals. All merged fields are additive, so file order does not affect the
// totals. The ungrouped per-file rows are retained for child-row drill-down.
type SummaryMerger struct {
	resolver *Resolver
	byKey    map[settlement.RiderKey]*settlement.MergedSummary
}

func NewSummaryMerger(resolver *Resolver) *SummaryMerger {
	return &SummaryMerger{
		resolver: resolver,
		byKey:    make(map[settlement.RiderKey]*settlement.MergedSummary),
	}
}

// Add consumes one summary row from the named file.
func (m *SummaryMerger) Add(fileName string, row settlement.RawSummaryRow) {
	key := m.resolver.Resolve(row.LicenseID, row.RiderName, row.PhoneSuffix)

	s, ok := m.byKey[key]
	if !ok {
		name, suffix := row.RiderName, row.PhoneSuffix
		if suffix == "" {
			name, suffix = SplitSuffix(row.RiderName)
		}
		s = &settlement.MergedSummary{Key: key, Name: name, PhoneSuffix: suffix}
		m.byKey[key] = s
	}
	if s.LicenseID == "" && !isPlaceholderLicense(row.LicenseID) {
		s.LicenseID = row.LicenseID
	}

	s.TotalOrders += row.TotalOrders
	s.SettlementAmount = s.SettlementAmount.Add(row.SettlementAmount)
	s.SupportTotal = s.SupportTotal.Add(row.SupportTotal)
	s.Deduction = s.Deduction.Add(row.Deduction)
	s.TotalSettlement = s.TotalSettlement.Add(row.TotalSettlement)
	s.Fee = s.Fee.Add(row.Fee)
	s.Employment = s.Employment.Add(row.Employment)
	s.Accident = s.Accident.Add(row.Accident)
	s.TimeInsurance = s.TimeInsurance.Add(row.TimeInsurance)
	s.RetroInsurance = s.RetroInsurance.Add(row.RetroInsurance)

	s.Files = append(s.Files, settlement.FileSummary{FileName: fileName, Row: row})
}

// Merged returns the per-rider totals.
func (m *SummaryMerger) Merged() map[settlement.RiderKey]*settlement.MergedSummary {
	return m.byKey
}
