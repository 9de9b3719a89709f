package rider

import (
	"time"

	"github.com/shopspring/decimal"
)

type RiderStatus string

const (
	RiderStatusActive   RiderStatus = "active"
	RiderStatusResigned RiderStatus = "resigned"
)

// Rider is a settlement target registered in the system, as opposed to the
// identities that appear in uploaded payroll files. The wizard matches
// uploaded identities against riders via the branch roster.
type Rider struct {
	ID          string
	BranchID    string
	Name        string
	LicenseID   *string
	PhoneNumber string
	// PhoneSuffix is the last four digits of PhoneNumber, the identity
	// fragment carried by uploaded payroll rows.
	PhoneSuffix string
	Status      RiderStatus

	// DailyRentalFee applies while LeaseActive; the weekly statement
	// deducts seven days of it.
	DailyRentalFee decimal.Decimal
	LeaseActive    bool

	// WeeklyLoanPayment is the fixed loan installment deducted from each
	// weekly statement while a loan is outstanding.
	WeeklyLoanPayment decimal.Decimal

	BankName          *string
	BankAccountNumber *string

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
