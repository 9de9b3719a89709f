package settlement

import (
	"context"

	"github.com/shopspring/decimal"
)

// FileParser turns one uploaded workbook into structured rows. Parsing is
// performed once per file, sequentially, in upload order; the first failure
// aborts the run.
type FileParser interface {
	Parse(ctx context.Context, upload Upload) (ParsedFile, error)
}

// PaidTotalsSource looks up amounts already paid out per license id under
// the separate daily settlement cycle, over the given date span. The lookup
// is best-effort: on failure the pipeline proceeds with zero offsets.
type PaidTotalsSource interface {
	PaidTotals(ctx context.Context, licenseIDs []string, from, to string) (map[string]decimal.Decimal, error)
}

// SettlementService runs the weekly settlement wizard.
type SettlementService interface {
	RunWeekly(ctx context.Context, req RunRequest) (RunResult, error)
	ExportWeekly(ctx context.Context, req RunRequest) ([]byte, string, error)
}
