package driver

import (
	"context"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/user"
)

type DriverService interface {
	Create(ctx context.Context, req CreateDriverRequest, actor user.Actor) (DriverResponse, error)
	Get(ctx context.Context, id string) (DriverResponse, error)
	ListByBranch(ctx context.Context, branchID string, filter ListDriversFilter) ([]DriverResponse, error)
	Approve(ctx context.Context, id string, actor user.Actor) (DriverResponse, error)
	Reject(ctx context.Context, id string, actor user.Actor) (DriverResponse, error)
}
