package vehicle

import (
	"context"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/user"
)

type VehicleService interface {
	Create(ctx context.Context, req CreateVehicleRequest, actor user.Actor) (VehicleResponse, error)
	Get(ctx context.Context, id string) (VehicleResponse, error)
	ListByBranch(ctx context.Context, branchID string) ([]VehicleResponse, error)
}
