package promotion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/branch"
	"github.com/beginal/jeongsan-admin-sub000/internal/domain/promotion"
	"github.com/jackc/pgx/v5"
)

type PromotionServiceImpl struct {
	promotion.PromotionRepository
	branchRepo branch.BranchRepository
}

func NewPromotionService(promotionRepository promotion.PromotionRepository, branchRepository branch.BranchRepository) promotion.PromotionService {
	return &PromotionServiceImpl{
		PromotionRepository: promotionRepository,
		branchRepo:          branchRepository,
	}
}

// Create implements promotion.PromotionService.
func (s *PromotionServiceImpl) Create(ctx context.Context, req promotion.CreatePromotionRequest) (promotion.PromotionResponse, error) {
	if err := req.Validate(); err != nil {
		return promotion.PromotionResponse{}, err
	}

	created, err := s.PromotionRepository.Create(ctx, promotion.Promotion{
		Name:   req.Name,
		Type:   req.Type,
		Params: req.Params,
	})
	if err != nil {
		return promotion.PromotionResponse{}, fmt.Errorf("failed to create promotion: %w", err)
	}

	return toPromotionResponse(created), nil
}

// GetByID implements promotion.PromotionService.
func (s *PromotionServiceImpl) GetByID(ctx context.Context, id string) (promotion.PromotionResponse, error) {
	found, err := s.PromotionRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return promotion.PromotionResponse{}, promotion.ErrPromotionNotFound
		}
		return promotion.PromotionResponse{}, fmt.Errorf("failed to get promotion by id: %w", err)
	}

	return toPromotionResponse(found), nil
}

// List implements promotion.PromotionService.
func (s *PromotionServiceImpl) List(ctx context.Context) ([]promotion.PromotionResponse, error) {
	promotions, err := s.PromotionRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}

	responses := make([]promotion.PromotionResponse, 0, len(promotions))
	for _, p := range promotions {
		responses = append(responses, toPromotionResponse(p))
	}
	return responses, nil
}

// Update implements promotion.PromotionService.
func (s *PromotionServiceImpl) Update(ctx context.Context, req promotion.UpdatePromotionRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if len(req.Params) > 0 {
		// New params must still normalize against the stored type.
		existing, err := s.PromotionRepository.GetByID(ctx, req.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return promotion.ErrPromotionNotFound
			}
			return fmt.Errorf("failed to get promotion by id: %w", err)
		}
		existing.Params = req.Params
		if _, err := promotion.Normalize(existing); err != nil {
			return err
		}
	}

	if err := s.PromotionRepository.Update(ctx, req); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return promotion.ErrPromotionNotFound
		}
		return fmt.Errorf("failed to update promotion: %w", err)
	}
	return nil
}

// Delete implements promotion.PromotionService.
func (s *PromotionServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.PromotionRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return promotion.ErrPromotionNotFound
		}
		return fmt.Errorf("failed to delete promotion: %w", err)
	}
	return nil
}

// Assign implements promotion.PromotionService.
func (s *PromotionServiceImpl) Assign(ctx context.Context, req promotion.AssignPromotionRequest) (promotion.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return promotion.AssignmentResponse{}, err
	}

	if _, err := s.PromotionRepository.GetByID(ctx, req.PromotionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return promotion.AssignmentResponse{}, promotion.ErrPromotionNotFound
		}
		return promotion.AssignmentResponse{}, fmt.Errorf("failed to get promotion by id: %w", err)
	}
	if _, err := s.branchRepo.GetByID(ctx, req.BranchID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return promotion.AssignmentResponse{}, branch.ErrBranchNotFound
		}
		return promotion.AssignmentResponse{}, fmt.Errorf("failed to get branch by id: %w", err)
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	created, err := s.PromotionRepository.Assign(ctx, promotion.Assignment{
		PromotionID: req.PromotionID,
		BranchID:    req.BranchID,
		StartDate:   start,
		EndDate:     end,
		Active:      active,
	})
	if err != nil {
		return promotion.AssignmentResponse{}, fmt.Errorf("failed to assign promotion: %w", err)
	}

	return toAssignmentResponse(created), nil
}

// ListAssignments implements promotion.PromotionService.
func (s *PromotionServiceImpl) ListAssignments(ctx context.Context, promotionID string) ([]promotion.AssignmentResponse, error) {
	assignments, err := s.PromotionRepository.ListAssignments(ctx, promotionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	responses := make([]promotion.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, toAssignmentResponse(a))
	}
	return responses, nil
}

// RemoveAssignment implements promotion.PromotionService.
func (s *PromotionServiceImpl) RemoveAssignment(ctx context.Context, id string) error {
	if err := s.PromotionRepository.RemoveAssignment(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return promotion.ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to remove assignment: %w", err)
	}
	return nil
}

func toPromotionResponse(p promotion.Promotion) promotion.PromotionResponse {
	return promotion.PromotionResponse{
		ID:     p.ID,
		Name:   p.Name,
		Type:   p.Type,
		Params: p.Params,
	}
}

func toAssignmentResponse(a promotion.Assignment) promotion.AssignmentResponse {
	return promotion.AssignmentResponse{
		ID:          a.ID,
		PromotionID: a.PromotionID,
		BranchID:    a.BranchID,
		BranchName:  a.BranchName,
		StartDate:   a.StartDate.Format("2006-01-02"),
		EndDate:     a.EndDate.Format("2006-01-02"),
		Active:      a.Active,
	}
}
