package wallet

import (
	"context"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/user"
)

type WalletService interface {
	Propose(ctx context.Context, req ProposeRequest, actor user.Actor) (TransactionResponse, error)
	Resolve(ctx context.Context, id string, outcome Outcome, actor user.Actor) (TransactionResponse, error)
	Get(ctx context.Context, id string) (TransactionResponse, error)
	DriverStatement(ctx context.Context, driverID string) (Statement, error)
	ListPending(ctx context.Context, branchID *string) ([]TransactionResponse, error)
	ListApproved(ctx context.Context, branchID *string, groupByKind bool) (ApprovedListing, error)
	RecomputeBalance(ctx context.Context, driverID string) (RecomputeResponse, error)
}
