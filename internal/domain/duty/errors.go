package duty

import "github.com/fleetdesk/fleet-backend-go/internal/pkg/apperror"

var (
	ErrSessionNotFound         = apperror.NotFound("duty session not found")
	ErrActiveSessionExists     = apperror.Conflict("driver already has an active duty session")
	ErrSessionAlreadyCompleted = apperror.InvalidState("duty session is already completed")
	ErrNegativeDistance        = apperror.Validation("end odometer must not be lower than start odometer")
	ErrEndBeforeStart          = apperror.Validation("end time must not be earlier than start time")
)
