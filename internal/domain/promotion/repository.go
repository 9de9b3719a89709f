package promotion

import (
	"context"
	"time"
)

type PromotionRepository interface {
	Create(ctx context.Context, p Promotion) (Promotion, error)
	GetByID(ctx context.Context, id string) (Promotion, error)
	List(ctx context.Context) ([]Promotion, error)
	Update(ctx context.Context, req UpdatePromotionRequest) error
	Delete(ctx context.Context, id string) error

	Assign(ctx context.Context, a Assignment) (Assignment, error)
	ListAssignments(ctx context.Context, promotionID string) ([]Assignment, error)
	RemoveAssignment(ctx context.Context, id string) error
	// ActiveAssignments returns every assignment whose window overlaps the
	// given span and whose active flag is set, with the promotion loaded.
	ActiveAssignments(ctx context.Context, from, to time.Time) ([]Assignment, map[string]Promotion, error)
}

type PromotionService interface {
	Create(ctx context.Context, req CreatePromotionRequest) (PromotionResponse, error)
	GetByID(ctx context.Context, id string) (PromotionResponse, error)
	List(ctx context.Context) ([]PromotionResponse, error)
	Update(ctx context.Context, req UpdatePromotionRequest) error
	Delete(ctx context.Context, id string) error

	Assign(ctx context.Context, req AssignPromotionRequest) (AssignmentResponse, error)
	ListAssignments(ctx context.Context, promotionID string) ([]AssignmentResponse, error)
	RemoveAssignment(ctx context.Context, id string) error
}
