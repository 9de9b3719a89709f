package branch

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeType selects how a branch's commission fee is computed.
type FeeType string

const (
	FeePerCase    FeeType = "per_case"
	FeePercentage FeeType = "percentage"
)

// FeePolicy is a branch's commission fee rule. Value is an amount per order
// for FeePerCase, a percentage for FeePercentage.
type FeePolicy struct {
	Type  FeeType         `json:"type"`
	Value decimal.Decimal `json:"value"`
}

type Branch struct {
	ID        string
	Name      string
	Address   *string
	FeePolicy *FeePolicy
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// RosterEntry links a system rider to a branch. The settlement wizard uses
// (branch, phone suffix) to match uploaded identities to system riders.
type RosterEntry struct {
	BranchID    string
	BranchName  string
	RiderID     string
	RiderName   string
	PhoneSuffix string
}
