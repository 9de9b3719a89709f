package rider

import (
	"context"
	"errors"
	"fmt"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/branch"
	"github.com/beginal/jeongsan-admin-sub000/internal/domain/rider"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type RiderServiceImpl struct {
	rider.RiderRepository
	branchRepo branch.BranchRepository
}

func NewRiderService(riderRepository rider.RiderRepository, branchRepository branch.BranchRepository) rider.RiderService {
	return &RiderServiceImpl{
		RiderRepository: riderRepository,
		branchRepo:      branchRepository,
	}
}

// phoneSuffix extracts the last four digits of a phone number. Validation
// guarantees at least ten digits, so this never underflows.
func phoneSuffix(phone string) string {
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < 4 {
		return string(digits)
	}
	return string(digits[len(digits)-4:])
}

// Create implements rider.RiderService.
func (s *RiderServiceImpl) Create(ctx context.Context, req rider.CreateRiderRequest) (rider.RiderResponse, error) {
	if err := req.Validate(); err != nil {
		return rider.RiderResponse{}, err
	}

	if _, err := s.branchRepo.GetByID(ctx, req.BranchID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rider.RiderResponse{}, rider.ErrBranchNotFound
		}
		return rider.RiderResponse{}, fmt.Errorf("failed to get branch by id: %w", err)
	}

	newRider := rider.Rider{
		BranchID:    req.BranchID,
		Name:        req.Name,
		LicenseID:   req.LicenseID,
		PhoneNumber: req.PhoneNumber,
		PhoneSuffix: phoneSuffix(req.PhoneNumber),
		Status:      rider.RiderStatusActive,
	}
	if req.DailyRentalFee != nil {
		newRider.DailyRentalFee = *req.DailyRentalFee
	} else {
		newRider.DailyRentalFee = decimal.Zero
	}
	if req.LeaseActive != nil {
		newRider.LeaseActive = *req.LeaseActive
	}
	if req.WeeklyLoanPayment != nil {
		newRider.WeeklyLoanPayment = *req.WeeklyLoanPayment
	} else {
		newRider.WeeklyLoanPayment = decimal.Zero
	}
	newRider.BankName = req.BankName
	newRider.BankAccountNumber = req.BankAccountNumber

	created, err := s.RiderRepository.Create(ctx, newRider)
	if err != nil {
		return rider.RiderResponse{}, fmt.Errorf("failed to create rider: %w", err)
	}

	return toRiderResponse(created), nil
}

// GetByID implements rider.RiderService.
func (s *RiderServiceImpl) GetByID(ctx context.Context, id string) (rider.RiderResponse, error) {
	found, err := s.RiderRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rider.RiderResponse{}, rider.ErrRiderNotFound
		}
		return rider.RiderResponse{}, fmt.Errorf("failed to get rider by id: %w", err)
	}

	return toRiderResponse(found), nil
}

// List implements rider.RiderService.
func (s *RiderServiceImpl) List(ctx context.Context, filter rider.RiderFilter) ([]rider.RiderResponse, error) {
	riders, err := s.RiderRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list riders: %w", err)
	}

	responses := make([]rider.RiderResponse, 0, len(riders))
	for _, r := range riders {
		responses = append(responses, toRiderResponse(r))
	}
	return responses, nil
}

// Update implements rider.RiderService.
func (s *RiderServiceImpl) Update(ctx context.Context, req rider.UpdateRiderRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if req.BranchID != nil {
		if _, err := s.branchRepo.GetByID(ctx, *req.BranchID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return rider.ErrBranchNotFound
			}
			return fmt.Errorf("failed to get branch by id: %w", err)
		}
	}

	if err := s.RiderRepository.Update(ctx, req); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rider.ErrRiderNotFound
		}
		return fmt.Errorf("failed to update rider: %w", err)
	}
	return nil
}

// Delete implements rider.RiderService.
func (s *RiderServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.RiderRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rider.ErrRiderNotFound
		}
		return fmt.Errorf("failed to delete rider: %w", err)
	}
	return nil
}

func toRiderResponse(r rider.Rider) rider.RiderResponse {
	return rider.RiderResponse{
		ID:                r.ID,
		BranchID:          r.BranchID,
		Name:              r.Name,
		LicenseID:         r.LicenseID,
		PhoneNumber:       r.PhoneNumber,
		PhoneSuffix:       r.PhoneSuffix,
		Status:            r.Status,
		DailyRentalFee:    r.DailyRentalFee,
		LeaseActive:       r.LeaseActive,
		WeeklyLoanPayment: r.WeeklyLoanPayment,
		BankName:          r.BankName,
		BankAccountNumber: r.BankAccountNumber,
	}
}
