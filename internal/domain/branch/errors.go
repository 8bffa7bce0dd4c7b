package branch

import "github.com/fleetdesk/fleet-backend-go/internal/pkg/apperror"

var (
	ErrBranchNotFound   = apperror.NotFound("branch not found")
	ErrBranchNameExists = apperror.Conflict("branch with this name already exists")
)
