package duty

import "context"

type SessionRepository interface {
	// CreateActive inserts s as the driver's active session. Returns
	// ErrActiveSessionExists if the driver already has one.
	CreateActive(ctx context.Context, s Session) (Session, error)
	GetByID(ctx context.Context, id string) (Session, error)
	// GetActiveByDriver returns ErrSessionNotFound when the driver is off duty.
	GetActiveByDriver(ctx context.Context, driverID string) (Session, error)
	// Complete applies c only while the session is still active. Returns
	// ErrSessionAlreadyCompleted otherwise.
	Complete(ctx context.Context, id string, c Closing) (Session, error)
	ListCompletedByBranch(ctx context.Context, branchID string) ([]Session, error)
}
