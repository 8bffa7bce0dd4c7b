package driver

import (
	"context"
	"time"
)

type DriverRepository interface {
	Create(ctx context.Context, d Driver) (Driver, error)
	FindByID(ctx context.Context, id string) (Driver, error)
	ListByBranch(ctx context.Context, branchID string, filter ListDriversFilter) ([]Driver, error)
	SetDutyStatus(ctx context.Context, id string, onDuty bool) error
	// Resolve moves a waiting driver to status. Returns ErrDriverAlreadyProcessed
	// when the driver is no longer waiting.
	Resolve(ctx context.Context, id string, status Status, resolvedBy string, resolvedAt time.Time) (Driver, error)
}
