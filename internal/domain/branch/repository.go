package branch

import "context"

type BranchRepository interface {
	Create(ctx context.Context, branch Branch) (Branch, error)
	GetByID(ctx context.Context, id string) (Branch, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]Branch, error)
}
