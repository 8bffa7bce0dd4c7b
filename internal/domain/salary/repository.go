package salary

import "context"

type AssignmentRepository interface {
	// Upsert creates or replaces the driver's assignment.
	Upsert(ctx context.Context, a Assignment) (Assignment, error)
	GetByDriverID(ctx context.Context, driverID string) (Assignment, error)
	ListByBranch(ctx context.Context, branchID string) ([]Assignment, error)
}
