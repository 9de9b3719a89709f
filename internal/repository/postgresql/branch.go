package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/branch"
	"github.com/beginal/jeongsan-admin-sub000/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type branchRepositoryImpl struct {
	db *database.DB
}

func NewBranchRepository(db *database.DB) branch.BranchRepository {
	return &branchRepositoryImpl{db: db}
}

// feePolicyColumns splits a FeePolicy into its nullable columns.
func feePolicyColumns(p *branch.FeePolicy) (*string, *decimal.Decimal) {
	if p == nil {
		return nil, nil
	}
	feeType := string(p.Type)
	feeValue := p.Value
	return &feeType, &feeValue
}

func assembleFeePolicy(feeType *string, feeValue *decimal.Decimal) *branch.FeePolicy {
	if feeType == nil || feeValue == nil {
		return nil
	}
	return &branch.FeePolicy{Type: branch.FeeType(*feeType), Value: *feeValue}
}

// Create implements branch.BranchRepository.
func (r *branchRepositoryImpl) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO branches (id, name, address, fee_type, fee_value, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	feeType, feeValue := feePolicyColumns(b.FeePolicy)
	err := q.QueryRow(ctx, query, b.Name, b.Address, feeType, feeValue).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "uk_branch_name") {
			return branch.Branch{}, branch.ErrBranchNameExists
		}
		return branch.Branch{}, err
	}
	return b, nil
}

// GetByID implements branch.BranchRepository.
func (r *branchRepositoryImpl) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, fee_type, fee_value, created_at, updated_at
		FROM branches
		WHERE id = $1 AND deleted_at IS NULL
	`

	var b branch.Branch
	var feeType *string
	var feeValue *decimal.Decimal
	err := q.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.Address, &feeType, &feeValue, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return branch.Branch{}, err
	}
	b.FeePolicy = assembleFeePolicy(feeType, feeValue)
	return b, nil
}

// List implements branch.BranchRepository.
func (r *branchRepositoryImpl) List(ctx context.Context) ([]branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, fee_type, fee_value, created_at, updated_at
		FROM branches
		WHERE deleted_at IS NULL
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []branch.Branch
	for rows.Next() {
		var b branch.Branch
		var feeType *string
		var feeValue *decimal.Decimal
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &feeType, &feeValue, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		b.FeePolicy = assembleFeePolicy(feeType, feeValue)
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

// Update implements branch.BranchRepository.
func (r *branchRepositoryImpl) Update(ctx context.Context, req branch.UpdateBranchRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID}
	argIdx := 2

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Address != nil {
		setParts = append(setParts, fmt.Sprintf("address = $%d", argIdx))
		args = append(args, *req.Address)
		argIdx++
	}
	if req.FeePolicy != nil {
		feeType, feeValue := feePolicyColumns(req.FeePolicy)
		setParts = append(setParts, fmt.Sprintf("fee_type = $%d", argIdx))
		args = append(args, feeType)
		argIdx++
		setParts = append(setParts, fmt.Sprintf("fee_value = $%d", argIdx))
		args = append(args, feeValue)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE branches
		SET %s
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if strings.Contains(err.Error(), "uk_branch_name") {
			return branch.ErrBranchNameExists
		}
		return err
	}
	return nil
}

// Delete implements branch.BranchRepository.
func (r *branchRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE branches
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`

	var deletedID string
	return q.QueryRow(ctx, query, id).Scan(&deletedID)
}

// Roster implements branch.BranchRepository.
func (r *branchRepositoryImpl) Roster(ctx context.Context) ([]branch.RosterEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.id, b.name, r.id, r.name, r.phone_suffix
		FROM branches b
		JOIN riders r ON r.branch_id = b.id
		WHERE b.deleted_at IS NULL
		  AND r.deleted_at IS NULL
		  AND r.status = 'active'
		ORDER BY b.name, r.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []branch.RosterEntry
	for rows.Next() {
		var e branch.RosterEntry
		if err := rows.Scan(&e.BranchID, &e.BranchName, &e.RiderID, &e.RiderName, &e.PhoneSuffix); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
