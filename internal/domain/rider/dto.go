package rider

import (
	"github.com/beginal/jeongsan-admin-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RiderResponse struct {
	ID                string          `json:"id"`
	BranchID          string          `json:"branch_id"`
	Name              string          `json:"name"`
	LicenseID         *string         `json:"license_id,omitempty"`
	PhoneNumber       string          `json:"phone_number"`
	PhoneSuffix       string          `json:"phone_suffix"`
	Status            RiderStatus     `json:"status"`
	DailyRentalFee    decimal.Decimal `json:"daily_rental_fee"`
	LeaseActive       bool            `json:"lease_active"`
	WeeklyLoanPayment decimal.Decimal `json:"weekly_loan_payment"`
	BankName          *string         `json:"bank_name,omitempty"`
	BankAccountNumber *string         `json:"bank_account_number,omitempty"`
}

type CreateRiderRequest struct {
	BranchID          string           `json:"branch_id"`
	Name              string           `json:"name"`
	LicenseID         *string          `json:"license_id,omitempty"`
	PhoneNumber       string           `json:"phone_number"`
	DailyRentalFee    *decimal.Decimal `json:"daily_rental_fee,omitempty"`
	LeaseActive       *bool            `json:"lease_active,omitempty"`
	WeeklyLoanPayment *decimal.Decimal `json:"weekly_loan_payment,omitempty"`
	BankName          *string          `json:"bank_name,omitempty"`
	BankAccountNumber *string          `json:"bank_account_number,omitempty"`
}

func (r *CreateRiderRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BranchID) {
		errs = append(errs, validator.ValidationError{Field: "branch_id", Message: "branch_id is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidPhoneNumber(r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{Field: "phone_number", Message: "must be a valid phone number"})
	}
	if r.DailyRentalFee != nil && r.DailyRentalFee.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "daily_rental_fee", Message: "must be non-negative"})
	}
	if r.WeeklyLoanPayment != nil && r.WeeklyLoanPayment.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "weekly_loan_payment", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRiderRequest struct {
	ID                string           `json:"-"`
	BranchID          *string          `json:"branch_id,omitempty"`
	Name              *string          `json:"name,omitempty"`
	LicenseID         *string          `json:"license_id,omitempty"`
	PhoneNumber       *string          `json:"phone_number,omitempty"`
	Status            *RiderStatus     `json:"status,omitempty"`
	DailyRentalFee    *decimal.Decimal `json:"daily_rental_fee,omitempty"`
	LeaseActive       *bool            `json:"lease_active,omitempty"`
	WeeklyLoanPayment *decimal.Decimal `json:"weekly_loan_payment,omitempty"`
	BankName          *string          `json:"bank_name,omitempty"`
	BankAccountNumber *string          `json:"bank_account_number,omitempty"`
}

func (r *UpdateRiderRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}
	if r.PhoneNumber != nil && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{Field: "phone_number", Message: "must be a valid phone number"})
	}
	if r.Status != nil && *r.Status != RiderStatusActive && *r.Status != RiderStatusResigned {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'active' or 'resigned'"})
	}
	if r.DailyRentalFee != nil && r.DailyRentalFee.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "daily_rental_fee", Message: "must be non-negative"})
	}
	if r.WeeklyLoanPayment != nil && r.WeeklyLoanPayment.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "weekly_loan_payment", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RiderFilter struct {
	BranchID *string `json:"branch_id,omitempty"`
	Status   *string `json:"status,omitempty"`
	Search   *string `json:"search,omitempty"`
}
