package branch

import (
	"github.com/beginal/jeongsan-admin-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type BranchResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Address   *string    `json:"address,omitempty"`
	FeePolicy *FeePolicy `json:"fee_policy,omitempty"`
}

type CreateBranchRequest struct {
	Name      string     `json:"name"`
	Address   *string    `json:"address,omitempty"`
	FeePolicy *FeePolicy `json:"fee_policy,omitempty"`
}

func validateFeePolicy(p *FeePolicy, errs validator.ValidationErrors) validator.ValidationErrors {
	if p == nil {
		return errs
	}
	if p.Type != FeePerCase && p.Type != FeePercentage {
		errs = append(errs, validator.ValidationError{
			Field:   "fee_policy.type",
			Message: "must be 'per_case' or 'percentage'",
		})
	}
	if p.Value.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "fee_policy.value",
			Message: "must be non-negative",
		})
	}
	if p.Type == FeePercentage && p.Value.GreaterThan(decimal.NewFromInt(100)) {
		errs = append(errs, validator.ValidationError{
			Field:   "fee_policy.value",
			Message: "percentage must not exceed 100",
		})
	}
	return errs
}

func (r *CreateBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}
	errs = validateFeePolicy(r.FeePolicy, errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateBranchRequest struct {
	ID        string     `json:"-"`
	Name      *string    `json:"name,omitempty"`
	Address   *string    `json:"address,omitempty"`
	FeePolicy *FeePolicy `json:"fee_policy,omitempty"`
}

func (r *UpdateBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	errs = validateFeePolicy(r.FeePolicy, errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}
