package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/promotion"
	"github.com/beginal/jeongsan-admin-sub000/internal/pkg/database"
)

type promotionRepositoryImpl struct {
	db *database.DB
}

func NewPromotionRepository(db *database.DB) promotion.PromotionRepository {
	return &promotionRepositoryImpl{db: db}
}

// Create implements promotion.PromotionRepository.
func (r *promotionRepositoryImpl) Create(ctx context.Context, p promotion.Promotion) (promotion.Promotion, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO promotions (id, name, type, params, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, p.Name, p.Type, p.Params).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return promotion.Promotion{}, err
	}
	return p, nil
}

// GetByID implements promotion.PromotionRepository.
func (r *promotionRepositoryImpl) GetByID(ctx context.Context, id string) (promotion.Promotion, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, type, params, created_at, updated_at
		FROM promotions
		WHERE id = $1 AND deleted_at IS NULL
	`

	var p promotion.Promotion
	err := q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Type, &p.Params, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return promotion.Promotion{}, err
	}
	return p, nil
}

// List implements promotion.PromotionRepository.
func (r *promotionRepositoryImpl) List(ctx context.Context) ([]promotion.Promotion, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, type, params, created_at, updated_at
		FROM promotions
		WHERE deleted_at IS NULL
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promotions []promotion.Promotion
	for rows.Next() {
		var p promotion.Promotion
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Params, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		promotions = append(promotions, p)
	}
	return promotions, rows.Err()
}

// Update implements promotion.PromotionRepository.
func (r *promotionRepositoryImpl) Update(ctx context.Context, req promotion.UpdatePromotionRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID}
	argIdx := 2

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if len(req.Params) > 0 {
		setParts = append(setParts, fmt.Sprintf("params = $%d", argIdx))
		args = append(args, req.Params)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE promotions
		SET %s
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	return q.QueryRow(ctx, query, args...).Scan(&updatedID)
}

// Delete implements promotion.PromotionRepository.
func (r *promotionRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE promotions
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`

	var deletedID string
	return q.QueryRow(ctx, query, id).Scan(&deletedID)
}

// Assign implements promotion.PromotionRepository.
func (r *promotionRepositoryImpl) Assign(ctx context.Context, a promotion.Assignment) (promotion.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO promotion_assignments (id, promotion_id, branch_id, start_date, end_date, active)
		VALUES (uuidv7(), $1, $2, $3, $4, $5)
		RETURNING id
	`

	err := q.QueryRow(ctx, query, a.PromotionID, a.BranchID, a.StartDate, a.EndDate, a.Active).Scan(&a.ID)
	if err != nil {
		return promotion.Assignment{}, err
	}
	return a, nil
}

// ListAssignments implements promotion.PromotionRepository.
func (r *promotionRepositoryImpl) ListAssignments(ctx context.Context, promotionID string) ([]promotion.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.promotion_id, a.branch_id, b.name, a.start_date, a.end_date, a.active
		FROM promotion_assignments a
		JOIN branches b ON b.id = a.branch_id
		WHERE a.promotion_id = $1
		ORDER BY a.start_date DESC
	`

	rows, err := q.Query(ctx, query, promotionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// RemoveAssignment implements promotion.PromotionRepository.
func (r *promotionRepositoryImpl) RemoveAssignment(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM promotion_assignments
		WHERE id = $1
		RETURNING id
	`

	var deletedID string
	return q.QueryRow(ctx, query, id).Scan(&deletedID)
}

// ActiveAssignments implements promotion.PromotionRepository.
func (r *promotionRepositoryImpl) ActiveAssignments(ctx context.Context, from, to time.Time) ([]promotion.Assignment, map[string]promotion.Promotion, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.promotion_id, a.branch_id, b.name, a.start_date, a.end_date, a.active
		FROM promotion_assignments a
		JOIN branches b ON b.id = a.branch_id
		JOIN promotions p ON p.id = a.promotion_id
		WHERE a.active
		  AND a.start_date <= $2
		  AND a.end_date >= $1
		  AND b.deleted_at IS NULL
		  AND p.deleted_at IS NULL
		ORDER BY a.start_date
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, nil, err
	}
	assignments, err := scanAssignments(rows)
	rows.Close()
	if err != nil {
		return nil, nil, err
	}

	promotions := make(map[string]promotion.Promotion)
	if len(assignments) > 0 {
		ids := make([]string, 0, len(assignments))
		seen := make(map[string]bool)
		for _, a := range assignments {
			if !seen[a.PromotionID] {
				seen[a.PromotionID] = true
				ids = append(ids, a.PromotionID)
			}
		}

		promoQuery := `
			SELECT id, name, type, params, created_at, updated_at
			FROM promotions
			WHERE id = ANY($1)
		`
		promoRows, err := q.Query(ctx, promoQuery, ids)
		if err != nil {
			return nil, nil, err
		}
		defer promoRows.Close()
		for promoRows.Next() {
			var p promotion.Promotion
			if err := promoRows.Scan(&p.ID, &p.Name, &p.Type, &p.Params, &p.CreatedAt, &p.UpdatedAt); err != nil {
				return nil, nil, err
			}
			promotions[p.ID] = p
		}
		if err := promoRows.Err(); err != nil {
			return nil, nil, err
		}
	}

	return assignments, promotions, nil
}

func scanAssignments(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]promotion.Assignment, error) {
	var assignments []promotion.Assignment
	for rows.Next() {
		var a promotion.Assignment
		if err := rows.Scan(&a.ID, &a.PromotionID, &a.BranchID, &a.BranchName, &a.StartDate, &a.EndDate, &a.Active); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
