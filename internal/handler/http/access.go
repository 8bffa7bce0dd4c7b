package http

import (
	"context"
	"net/http"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/driver"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/user"
)

// accessGuard decides whether an actor may touch records owned by a driver
// or a branch. Admins pass every check.
type accessGuard struct {
	driverService driver.DriverService
}

func newAccessGuard(driverService driver.DriverService) accessGuard {
	return accessGuard{driverService: driverService}
}

// driver allows drivers onto their own records and managers onto drivers of
// their branch.
func (g accessGuard) driver(ctx context.Context, actor user.Actor, driverID string) error {
	if !actor.CanActForDriver(driverID) {
		return user.ErrDriverAccessDenied
	}
	if actor.Role != user.RoleManager {
		return nil
	}

	d, err := g.driverService.Get(ctx, driverID)
	if err != nil {
		return err
	}
	if d.BranchID == nil || !actor.CanAccessBranch(*d.BranchID) {
		return user.ErrDriverAccessDenied
	}
	return nil
}

func (g accessGuard) branch(actor user.Actor, branchID string) error {
	if !actor.CanAccessBranch(branchID) {
		return user.ErrBranchAccessDenied
	}
	return nil
}

// branchScope resolves the optional branch_id filter of a listing. Admins may
// filter freely; everyone else is pinned to their own branch.
func (g accessGuard) branchScope(r *http.Request, actor user.Actor) (*string, error) {
	requested := r.URL.Query().Get("branch_id")
	if actor.IsAdmin() {
		if requested == "" {
			return nil, nil
		}
		return &requested, nil
	}

	if actor.BranchID == nil {
		return nil, user.ErrBranchAccessDenied
	}
	if requested != "" && requested != *actor.BranchID {
		return nil, user.ErrBranchAccessDenied
	}
	return actor.BranchID, nil
}
