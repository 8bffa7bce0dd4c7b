package vehicle

import "context"

type VehicleRepository interface {
	Create(ctx context.Context, v Vehicle) (Vehicle, error)
	GetByID(ctx context.Context, id string) (Vehicle, error)
	// ListByBranch returns the branch fleet ordered by vehicle number.
	ListByBranch(ctx context.Context, branchID string) ([]Vehicle, error)
}
