package user

import "errors"

var (
	ErrInvalidToken           = errors.New("invalid or missing access token")
	ErrAdminAccessRequired    = errors.New("admin access required")
	ErrManagerAccessRequired  = errors.New("manager access required")
	ErrBranchAccessDenied     = errors.New("access to this branch is not allowed")
	ErrDriverAccessDenied     = errors.New("access to this driver is not allowed")
	ErrInsufficientPermission = errors.New("insufficient permissions")
)
