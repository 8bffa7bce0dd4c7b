package salary

import "github.com/fleetdesk/fleet-backend-go/internal/pkg/apperror"

var (
	ErrAssignmentNotFound = apperror.NotFound("driver has no salary scheme assigned")
)
