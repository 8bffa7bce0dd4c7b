package response

import (
	"errors"
	"net/http"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/user"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/apperror"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Field level validation
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Identity errors
	switch {
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, err.Error())
		return
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrBranchAccessDenied),
		errors.Is(err, user.ErrDriverAccessDenied),
		errors.Is(err, user.ErrInsufficientPermission):
		Forbidden(w, err.Error())
		return
	}

	// Domain errors, classified by kind
	switch apperror.KindOf(err) {
	case apperror.ErrNotFound:
		NotFound(w, err.Error())
	case apperror.ErrConflict:
		Conflict(w, err.Error())
	case apperror.ErrInvalidState:
		InvalidState(w, err.Error())
	case apperror.ErrValidation:
		BadRequest(w, err.Error(), nil)
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
