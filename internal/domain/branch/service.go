package branch

import "context"

type BranchService interface {
	GetByID(ctx context.Context, id string) (BranchResponse, error)
	List(ctx context.Context) ([]BranchResponse, error)
	// Create is used by the seed command only; branch CRUD is not exposed over HTTP.
	Create(ctx context.Context, req CreateBranchRequest) (BranchResponse, error)
}
