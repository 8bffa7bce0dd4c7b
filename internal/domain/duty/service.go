package duty

import (
	"bytes"
	"context"
)

type DutyService interface {
	StartDuty(ctx context.Context, req StartDutyRequest) (SessionResponse, error)
	EndDuty(ctx context.Context, req EndDutyRequest) (SessionResponse, error)
	// GetActive returns nil when the driver has no active session.
	GetActive(ctx context.Context, driverID string) (*SessionResponse, error)
	Get(ctx context.Context, id string) (SessionResponse, error)
	ListCompleted(ctx context.Context, branchID string) ([]SessionResponse, error)
	ExportCompleted(ctx context.Context, branchID string) (*bytes.Buffer, string, error)
}
