package salary

import (
	"context"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/user"
)

// Calculator is the pure pay formula.
type Calculator interface {
	Calculate(in Input) Result
}

type SalaryService interface {
	Calculate(ctx context.Context, req CalculateRequest) (CalculateResponse, error)
	Assign(ctx context.Context, req AssignRequest, actor user.Actor) (AssignmentResponse, error)
	GetAssignment(ctx context.Context, driverID string) (AssignmentResponse, error)
	ListAssignments(ctx context.Context, branchID string) ([]AssignmentResponse, error)
}
