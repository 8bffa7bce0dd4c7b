package vehicle

import "github.com/fleetdesk/fleet-backend-go/internal/pkg/apperror"

var (
	ErrVehicleNotFound       = apperror.NotFound("vehicle not found")
	ErrVehicleNumberExists   = apperror.Conflict("vehicle with this number already exists")
	ErrVehicleBranchMismatch = apperror.Validation("vehicle is not registered to this branch")
	ErrBranchRequired        = apperror.Validation("branch_id is required")
)
