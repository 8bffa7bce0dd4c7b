package scheme

import "github.com/fleetdesk/fleet-backend-go/internal/pkg/apperror"

var (
	ErrSchemeNotFound   = apperror.NotFound("salary scheme not found")
	ErrSchemeNameExists = apperror.Conflict("salary scheme with this name already exists")
	ErrSchemeRenamed    = apperror.Validation("scheme name cannot be changed on replace")
)
