package settlement

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/branch"
	"github.com/beginal/jeongsan-admin-sub000/internal/domain/promotion"
	"github.com/beginal/jeongsan-admin-sub000/internal/domain/rider"
	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatementExporter renders a run result as a downloadable workbook.
type StatementExporter interface {
	Render(result settlement.RunResult) ([]byte, error)
}

type SettlementServiceImpl struct {
	logger        *slog.Logger
	parser        settlement.FileParser
	paidTotals    settlement.PaidTotalsSource
	branchRepo    branch.BranchRepository
	riderRepo     rider.RiderRepository
	promotionRepo promotion.PromotionRepository
	exporter      StatementExporter
}

func NewSettlementService(
	logger *slog.Logger,
	parser settlement.FileParser,
	paidTotals settlement.PaidTotalsSource,
	branchRepo branch.BranchRepository,
	riderRepo rider.RiderRepository,
	promotionRepo promotion.PromotionRepository,
	exporter StatementExporter,
) settlement.SettlementService {
	return &SettlementServiceImpl{
		logger:        logger,
		parser:        parser,
		paidTotals:    paidTotals,
		branchRepo:    branchRepo,
		riderRepo:     riderRepo,
		promotionRepo: promotionRepo,
		exporter:      exporter,
	}
}

// RunWeekly executes the full weekly settlement pipeline. The run owns all
// of its working state; re-running on unchanged inputs and catalogs yields
// identical output.
func (s *SettlementServiceImpl) RunWeekly(ctx context.Context, req settlement.RunRequest) (settlement.RunResult, error) {
	if len(req.Uploads) == 0 {
		return settlement.RunResult{}, settlement.ErrNoUploads
	}
	if err := req.Validate(); err != nil {
		return settlement.RunResult{}, err
	}

	// Every run gets its own id so log lines from concurrent runs can be
	// told apart.
	runID := uuid.NewString()
	s.logger.Info("weekly settlement run started",
		slog.String("run_id", runID), slog.Int("files", len(req.Uploads)))

	// Files are parsed one at a time, in upload order. The first failure
	// aborts the run: partial results must never be merged.
	files := make([]settlement.ParsedFile, 0, len(req.Uploads))
	for _, upload := range req.Uploads {
		parsed, err := s.parser.Parse(ctx, upload)
		if err != nil {
			return settlement.RunResult{}, fmt.Errorf("%w: %s: %v", settlement.ErrParseFailed, upload.Name, err)
		}
		files = append(files, parsed)
	}

	resolver := NewResolver()
	merger := NewSummaryMerger(resolver)
	aggregator := NewOrderAggregator(resolver)

	// Summary rows bind identities first within each file; they carry the
	// most reliable license ids.
	for _, f := range files {
		for _, row := range f.Summaries {
			merger.Add(f.Name, row)
		}
		for _, row := range f.Details {
			aggregator.Add(row)
		}
	}

	missions, missionDates := collectMissions(resolver, files)

	riders := aggregator.Finish()
	merged := merger.Merged()

	periodStart, periodEnd := judgementSpan(files)

	result := settlement.RunResult{
		MissionDates: missionDates,
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
	}

	branches, err := s.loadBranches(ctx)
	if err != nil {
		return settlement.RunResult{}, err
	}
	promosByBranch, promoWarnings, err := s.loadPromotions(ctx, periodStart, periodEnd)
	if err != nil {
		return settlement.RunResult{}, err
	}
	result.Warnings = append(result.Warnings, promoWarnings...)

	roster, err := s.branchRepo.Roster(ctx)
	if err != nil {
		return settlement.RunResult{}, fmt.Errorf("load roster: %w", err)
	}

	keys := allKeys(merged, riders)

	offsets := s.lookupPaidOffsets(ctx, &result, keys, merged, riders)
	matches, err := s.matchRiders(ctx, roster, keys, merged, riders)
	if err != nil {
		return settlement.RunResult{}, err
	}

	for _, key := range keys {
		in := BuildInput{
			Rider:              riders[key],
			Summary:            merged[key],
			Branches:           branches,
			PromotionsByBranch: promosByBranch,
			Missions:           missions[key],
			Matched:            matches[key],
		}
		if offset, ok := offsets[licenseIDFor(key, merged, riders)]; ok {
			in.PaidOffset = offset
		}
		result.Rows = append(result.Rows, BuildRow(in))
	}

	sort.SliceStable(result.Rows, func(i, j int) bool {
		if result.Rows[i].Name != result.Rows[j].Name {
			return result.Rows[i].Name < result.Rows[j].Name
		}
		return result.Rows[i].Key < result.Rows[j].Key
	})

	s.logger.Info("weekly settlement run finished",
		slog.String("run_id", runID),
		slog.Int("rows", len(result.Rows)),
		slog.String("period_start", result.PeriodStart),
		slog.String("period_end", result.PeriodEnd))

	return result, nil
}

// ExportWeekly runs the pipeline and renders the statement workbook.
func (s *SettlementServiceImpl) ExportWeekly(ctx context.Context, req settlement.RunRequest) ([]byte, string, error) {
	result, err := s.RunWeekly(ctx, req)
	if err != nil {
		return nil, "", err
	}
	data, err := s.exporter.Render(result)
	if err != nil {
		return nil, "", fmt.Errorf("render statement: %w", err)
	}
	name := fmt.Sprintf("weekly-settlement-%s-%s.xlsx", result.PeriodStart, result.PeriodEnd)
	return data, name, nil
}

func parseDay(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	return t, err == nil
}

func collectMissions(resolver *Resolver, files []settlement.ParsedFile) (map[settlement.RiderKey]map[string]decimal.Decimal, []string) {
	missions := make(map[settlement.RiderKey]map[string]decimal.Decimal)
	dateSet := make(map[string]bool)

	for _, f := range files {
		for _, m := range f.Missions {
			key := resolver.Resolve(m.LicenseID, m.RiderName, m.PhoneSuffix)
			byDate := missions[key]
			if byDate == nil {
				byDate = make(map[string]decimal.Decimal)
				missions[key] = byDate
			}
			byDate[m.Date] = byDate[m.Date].Add(m.Amount)
			dateSet[m.Date] = true
		}
	}

	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return missions, dates
}

// judgementSpan returns the min and max judgement dates across all orders;
// the reconciliation lookup covers exactly this span.
func judgementSpan(files []settlement.ParsedFile) (string, string) {
	start, end := "", ""
	for _, f := range files {
		for _, row := range f.Details {
			if row.JudgementDate == "" {
				continue
			}
			if start == "" || row.JudgementDate < start {
				start = row.JudgementDate
			}
			if end == "" || row.JudgementDate > end {
				end = row.JudgementDate
			}
		}
	}
	return start, end
}

func (s *SettlementServiceImpl) loadBranches(ctx context.Context) (map[string]branch.Branch, error) {
	list, err := s.branchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load branches: %w", err)
	}
	byLabel := make(map[string]branch.Branch, len(list))
	for _, b := range list {
		byLabel[b.Name] = b
	}
	return byLabel, nil
}

// loadPromotions normalizes every promotion active in the period. A
// promotion whose stored params cannot be normalized is skipped with a
// warning instead of failing the whole statement.
func (s *SettlementServiceImpl) loadPromotions(ctx context.Context, from, to string) (map[string][]promotion.Config, []string, error) {
	if from == "" || to == "" {
		return nil, nil, nil
	}
	fromDay, okFrom := parseDay(from)
	toDay, okTo := parseDay(to)
	if !okFrom || !okTo {
		return nil, nil, nil
	}

	assignments, promotions, err := s.promotionRepo.ActiveAssignments(ctx, fromDay, toDay)
	if err != nil {
		return nil, nil, fmt.Errorf("load promotions: %w", err)
	}

	configs := make(map[string]promotion.Config)
	var warnings []string
	byBranch := make(map[string][]promotion.Config)

	for _, a := range assignments {
		if !a.Active {
			continue
		}
		cfg, ok := configs[a.PromotionID]
		if !ok {
			p, found := promotions[a.PromotionID]
			if !found {
				continue
			}
			normalized, err := promotion.Normalize(p)
			if err != nil {
				warning := fmt.Sprintf("promotion %q skipped: %v", p.Name, err)
				warnings = append(warnings, warning)
				s.logger.Warn("skipping promotion with unusable params",
					slog.String("promotion_id", p.ID), slog.Any("error", err))
				continue
			}
			cfg = normalized
			configs[a.PromotionID] = cfg
		}
		byBranch[a.BranchName] = append(byBranch[a.BranchName], cfg)
	}

	return byBranch, warnings, nil
}

// lookupPaidOffsets batches the daily-settlement reconciliation lookup. It
// is best-effort: a failure degrades to zero offsets with a warning rather
// than aborting the run.
func (s *SettlementServiceImpl) lookupPaidOffsets(
	ctx context.Context,
	result *settlement.RunResult,
	keys []settlement.RiderKey,
	merged map[settlement.RiderKey]*settlement.MergedSummary,
	riders map[settlement.RiderKey]*settlement.AggregatedRider,
) map[string]decimal.Decimal {
	if result.PeriodStart == "" || result.PeriodEnd == "" {
		return nil
	}

	var licenseIDs []string
	seen := make(map[string]bool)
	for _, key := range keys {
		id := licenseIDFor(key, merged, riders)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		licenseIDs = append(licenseIDs, id)
	}
	if len(licenseIDs) == 0 {
		return nil
	}
	sort.Strings(licenseIDs)

	offsets, err := s.paidTotals.PaidTotals(ctx, licenseIDs, result.PeriodStart, result.PeriodEnd)
	if err != nil {
		s.logger.Warn("daily settlement lookup failed, proceeding with zero offsets",
			slog.Any("error", err))
		result.Warnings = append(result.Warnings,
			"daily settlement totals unavailable; reconciliation offsets set to zero")
		return nil
	}
	return offsets
}

// matchRiders resolves each statement identity to a system rider through
// the branch roster by (branch, phone suffix). No match is not an error;
// the row simply carries no rent or loan deduction.
func (s *SettlementServiceImpl) matchRiders(
	ctx context.Context,
	roster []branch.RosterEntry,
	keys []settlement.RiderKey,
	merged map[settlement.RiderKey]*settlement.MergedSummary,
	riders map[settlement.RiderKey]*settlement.AggregatedRider,
) (map[settlement.RiderKey]*MatchedRider, error) {
	type rosterKey struct{ branch, suffix string }
	bySuffix := make(map[rosterKey]branch.RosterEntry)
	for _, e := range roster {
		k := rosterKey{e.BranchName, e.PhoneSuffix}
		if _, ok := bySuffix[k]; !ok {
			bySuffix[k] = e
		}
	}

	matchedIDs := make(map[settlement.RiderKey]branch.RosterEntry)
	idSet := make(map[string]bool)
	for _, key := range keys {
		suffix := suffixFor(key, merged, riders)
		if suffix == "" {
			continue
		}
		for _, label := range branchesFor(key, merged, riders) {
			if e, ok := bySuffix[rosterKey{label, suffix}]; ok {
				matchedIDs[key] = e
				idSet[e.RiderID] = true
				break
			}
		}
	}
	if len(matchedIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	fetched, err := s.riderRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load matched riders: %w", err)
	}

	matches := make(map[settlement.RiderKey]*MatchedRider, len(matchedIDs))
	for key, entry := range matchedIDs {
		r, ok := fetched[entry.RiderID]
		if !ok {
			continue
		}
		matches[key] = &MatchedRider{
			ID:                r.ID,
			Name:              r.Name,
			DailyRentalFee:    r.DailyRentalFee,
			LeaseActive:       r.LeaseActive,
			WeeklyLoanPayment: r.WeeklyLoanPayment,
		}
	}
	return matches, nil
}

func allKeys(
	merged map[settlement.RiderKey]*settlement.MergedSummary,
	riders map[settlement.RiderKey]*settlement.AggregatedRider,
) []settlement.RiderKey {
	seen := make(map[settlement.RiderKey]bool, len(merged))
	keys := make([]settlement.RiderKey, 0, len(merged))
	for key := range merged {
		seen[key] = true
		keys = append(keys, key)
	}
	for key := range riders {
		if !seen[key] {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func licenseIDFor(
	key settlement.RiderKey,
	merged map[settlement.RiderKey]*settlement.MergedSummary,
	riders map[settlement.RiderKey]*settlement.AggregatedRider,
) string {
	if s, ok := merged[key]; ok && s.LicenseID != "" {
		return s.LicenseID
	}
	if r, ok := riders[key]; ok {
		return r.LicenseID
	}
	return ""
}

func suffixFor(
	key settlement.RiderKey,
	merged map[settlement.RiderKey]*settlement.MergedSummary,
	riders map[settlement.RiderKey]*settlement.AggregatedRider,
) string {
	if s, ok := merged[key]; ok && s.PhoneSuffix != "" {
		return s.PhoneSuffix
	}
	if r, ok := riders[key]; ok {
		return r.PhoneSuffix
	}
	return ""
}

func branchesFor(
	key settlement.RiderKey,
	merged map[settlement.RiderKey]*settlement.MergedSummary,
	riders map[settlement.RiderKey]*settlement.AggregatedRider,
) []string {
	seen := make(map[string]bool)
	var labels []string
	if r, ok := riders[key]; ok {
		for label := range r.BranchOrders {
			if !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		}
	}
	if s, ok := merged[key]; ok {
		for _, fs := range s.Files {
			if !seen[fs.Row.Branch] {
				seen[fs.Row.Branch] = true
				labels = append(labels, fs.Row.Branch)
			}
		}
	}
	sort.Strings(labels)
	return labels
}
