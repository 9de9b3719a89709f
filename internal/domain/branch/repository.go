package branch

import "context"

type BranchRepository interface {
	Create(ctx context.Context, branch Branch) (Branch, error)
	GetByID(ctx context.Context, id string) (Branch, error)
	List(ctx context.Context) ([]Branch, error)
	Update(ctx context.Context, req UpdateBranchRequest) error
	Delete(ctx context.Context, id string) error
	// Roster returns every active branch-rider link, used by the wizard to
	// match uploaded identities to system riders.
	Roster(ctx context.Context) ([]RosterEntry, error)
}

type BranchService interface {
	Create(ctx context.Context, req CreateBranchRequest) (BranchResponse, error)
	GetByID(ctx context.Context, id string) (BranchResponse, error)
	List(ctx context.Context) ([]BranchResponse, error)
	Update(ctx context.Context, req UpdateBranchRequest) error
	Delete(ctx context.Context, id string) error
}
