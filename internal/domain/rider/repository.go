package rider

import "context"

type RiderRepository interface {
	Create(ctx context.Context, rider Rider) (Rider, error)
	GetByID(ctx context.Context, id string) (Rider, error)
	List(ctx context.Context, filter RiderFilter) ([]Rider, error)
	Update(ctx context.Context, req UpdateRiderRequest) error
	Delete(ctx context.Context, id string) error
	// GetByIDs fetches riders in bulk; ids not found are silently skipped.
	GetByIDs(ctx context.Context, ids []string) (map[string]Rider, error)
}

type RiderService interface {
	Create(ctx context.Context, req CreateRiderRequest) (RiderResponse, error)
	GetByID(ctx context.Context, id string) (RiderResponse, error)
	List(ctx context.Context, filter RiderFilter) ([]RiderResponse, error)
	Update(ctx context.Context, req UpdateRiderRequest) error
	Delete(ctx context.Context, id string) error
}
