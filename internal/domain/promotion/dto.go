package promotion

import (
	"encoding/json"

	"github.com/beginal/jeongsan-admin-sub000/internal/pkg/validator"
)

type PromotionResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Type   PromotionType   `json:"type"`
	Params json.RawMessage `json:"params"`
}

type CreatePromotionRequest struct {
	Name   string          `json:"name"`
	Type   PromotionType   `json:"type"`
	Params json.RawMessage `json:"params"`
}

func (r *CreatePromotionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	switch r.Type {
	case TypeExcess, TypeMilestone, TypeMilestonePerUnit:
	default:
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'excess', 'milestone' or 'milestone_per_unit'"})
	}
	if len(r.Params) == 0 {
		errs = append(errs, validator.ValidationError{Field: "params", Message: "params are required"})
	} else {
		// Reject params that the engine would not be able to evaluate later.
		probe := Promotion{ID: "new", Name: r.Name, Type: r.Type, Params: r.Params}
		if _, err := Normalize(probe); err != nil {
			errs = append(errs, validator.ValidationError{Field: "params", Message: err.Error()})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePromotionRequest struct {
	ID     string          `json:"-"`
	Name   *string         `json:"name,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
}

func (r *UpdatePromotionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignmentResponse struct {
	ID          string `json:"id"`
	PromotionID string `json:"promotion_id"`
	BranchID    string `json:"branch_id"`
	BranchName  string `json:"branch_name,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Active      bool   `json:"active"`
}

type AssignPromotionRequest struct {
	PromotionID string `json:"-"`
	BranchID    string `json:"branch_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Active      *bool  `json:"active,omitempty"`
}

func (r *AssignPromotionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PromotionID) {
		errs = append(errs, validator.ValidationError{Field: "promotion_id", Message: "promotion_id is required"})
	}
	if validator.IsEmpty(r.BranchID) {
		errs = append(errs, validator.ValidationError{Field: "branch_id", Message: "branch_id is required"})
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
