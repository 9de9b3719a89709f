package branch

import (
	"context"
	"errors"
	"fmt"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/branch"
	"github.com/jackc/pgx/v5"
)

type BranchServiceImpl struct {
	branch.BranchRepository
}

func NewBranchService(branchRepository branch.BranchRepository) branch.BranchService {
	return &BranchServiceImpl{
		BranchRepository: branchRepository,
	}
}

// Create implements branch.BranchService.
func (s *BranchServiceImpl) Create(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	created, err := s.BranchRepository.Create(ctx, branch.Branch{
		Name:      req.Name,
		Address:   req.Address,
		FeePolicy: req.FeePolicy,
	})
	if err != nil {
		return branch.BranchResponse{}, fmt.Errorf("failed to create branch: %w", err)
	}

	return toBranchResponse(created), nil
}

// GetByID implements branch.BranchService.
func (s *BranchServiceImpl) GetByID(ctx context.Context, id string) (branch.BranchResponse, error) {
	found, err := s.BranchRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return branch.BranchResponse{}, branch.ErrBranchNotFound
		}
		return branch.BranchResponse{}, fmt.Errorf("failed to get branch by id: %w", err)
	}

	return toBranchResponse(found), nil
}

// List implements branch.BranchService.
func (s *BranchServiceImpl) List(ctx context.Context) ([]branch.BranchResponse, error) {
	branches, err := s.BranchRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	responses := make([]branch.BranchResponse, 0, len(branches))
	for _, b := range branches {
		responses = append(responses, toBranchResponse(b))
	}
	return responses, nil
}

// Update implements branch.BranchService.
func (s *BranchServiceImpl) Update(ctx context.Context, req branch.UpdateBranchRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.BranchRepository.Update(ctx, req); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return branch.ErrBranchNotFound
		}
		return fmt.Errorf("failed to update branch: %w", err)
	}
	return nil
}

// Delete implements branch.BranchService.
func (s *BranchServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.BranchRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return branch.ErrBranchNotFound
		}
		return fmt.Errorf("failed to delete branch: %w", err)
	}
	return nil
}

func toBranchResponse(b branch.Branch) branch.BranchResponse {
	return branch.BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		FeePolicy: b.FeePolicy,
	}
}
