package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleAdmin, PermissionWalletApprove))
	assert.False(t, HasPermission(RoleManager, PermissionWalletApprove))
	assert.True(t, HasPermission(RoleManager, PermissionWalletPropose))
	assert.False(t, HasPermission(RoleDriver, PermissionWalletPropose))
	assert.True(t, HasPermission(RoleDriver, PermissionDutyOperate))
	assert.True(t, HasPermission(RoleDriver, PermissionVehicleView))
	assert.False(t, HasPermission(RoleDriver, PermissionVehicleManage))
	assert.True(t, HasPermission(RoleManager, PermissionVehicleManage))
	assert.False(t, HasPermission(Role("owner"), PermissionSchemeView))
}

func TestActor_CanAccessBranch(t *testing.T) {
	north := "north"

	assert.True(t, Actor{ID: "a", Role: RoleAdmin}.CanAccessBranch("south"))
	assert.True(t, Actor{ID: "m", Role: RoleManager, BranchID: &north}.CanAccessBranch("north"))
	assert.False(t, Actor{ID: "m", Role: RoleManager, BranchID: &north}.CanAccessBranch("south"))
	assert.False(t, Actor{ID: "m", Role: RoleManager}.CanAccessBranch("north"))
}

func TestActor_CanActForDriver(t *testing.T) {
	assert.True(t, Actor{ID: "d-1", Role: RoleDriver}.CanActForDriver("d-1"))
	assert.False(t, Actor{ID: "d-1", Role: RoleDriver}.CanActForDriver("d-2"))
	assert.True(t, Actor{ID: "m", Role: RoleManager}.CanActForDriver("d-2"))
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleDriver.Valid())
	assert.False(t, Role("owner").Valid())
}
