package wallet

import "github.com/fleetdesk/fleet-backend-go/internal/pkg/apperror"

var (
	ErrTransactionNotFound   = apperror.NotFound("wallet transaction not found")
	ErrTransactionNotPending = apperror.Conflict("wallet transaction has already been resolved")
	ErrInvalidOutcome        = apperror.Validation("outcome must be approve or reject")
)
