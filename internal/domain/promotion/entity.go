package promotion

import (
	"encoding/json"
	"time"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

type PromotionType string

const (
	TypeExcess           PromotionType = "excess"
	TypeMilestone        PromotionType = "milestone"
	TypeMilestonePerUnit PromotionType = "milestone_per_unit"
)

// Promotion is a stored promotion definition. Params carries the reward
// formula parameters as JSON; older records use legacy field names, so the
// engine only ever consumes Params through Normalize.
type Promotion struct {
	ID        string
	Name      string
	Type      PromotionType
	Params    json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Assignment binds a promotion to a branch for a date window.
type Assignment struct {
	ID          string
	PromotionID string
	BranchID    string
	BranchName  string
	StartDate   time.Time
	EndDate     time.Time
	Active      bool
}

// CombineMode selects how a peak precondition's conditions combine per date.
type CombineMode string

const (
	CombineAnd CombineMode = "and"
	CombineOr  CombineMode = "or"
)

// PeakCondition requires at least MinCount orders in Slot on a date.
type PeakCondition struct {
	Slot     settlement.PeakSlot `json:"slot"`
	MinCount int                 `json:"min_count"`
}

// PeakRequirement gates a promotion on peak-time activity. Score is the
// number of dates on which the conditions hold; when MinScore is nil the
// requirement is informational only and never blocks the reward.
type PeakRequirement struct {
	Mode       CombineMode     `json:"mode"`
	MinScore   *int            `json:"min_score,omitempty"`
	Conditions []PeakCondition `json:"conditions"`
}

// Tier is one milestone step. Amount applies to TypeMilestone; UnitSize and
// UnitAmount apply to TypeMilestonePerUnit.
type Tier struct {
	Threshold  int             `json:"threshold"`
	Amount     decimal.Decimal `json:"amount"`
	UnitSize   int             `json:"unit_size"`
	UnitAmount decimal.Decimal `json:"unit_amount"`
}

// Config is a fully normalized promotion formula, the only shape the
// settlement engine evaluates.
type Config struct {
	ID   string
	Name string
	Type PromotionType

	// Excess parameters.
	Threshold       int
	AmountPerExcess decimal.Decimal

	// Milestone and milestone-per-unit tiers.
	Tiers []Tier

	Peak *PeakRequirement
}
