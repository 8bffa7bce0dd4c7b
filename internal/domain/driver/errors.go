package driver

import "github.com/fleetdesk/fleet-backend-go/internal/pkg/apperror"

var (
	ErrDriverNotFound         = apperror.NotFound("driver not found")
	ErrMobileExists           = apperror.Conflict("mobile number already registered")
	ErrDriverAlreadyProcessed = apperror.Conflict("driver onboarding already processed")
	ErrDriverNotActive        = apperror.Validation("driver onboarding has not been approved")
	ErrBranchRequired         = apperror.Validation("branch_id is required")
)
