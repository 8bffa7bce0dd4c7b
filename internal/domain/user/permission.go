package user

type Permission string

const (
	// Salary schemes
	PermissionSchemeView   Permission = "scheme.view"
	PermissionSchemeManage Permission = "scheme.manage"

	// Salary calculation and assignment
	PermissionSalaryCalculate Permission = "salary.calculate"
	PermissionSalaryAssign    Permission = "salary.assign"

	// Duty sessions
	PermissionDutyOperate Permission = "duty.operate"
	PermissionDutyViewAll Permission = "duty.view_all"

	// Wallet
	PermissionWalletViewOwn  Permission = "wallet.view_own"
	PermissionWalletViewAll  Permission = "wallet.view_all"
	PermissionWalletPropose  Permission = "wallet.propose"
	PermissionWalletApprove  Permission = "wallet.approve"
	PermissionWalletMaintain Permission = "wallet.maintain"

	// Drivers
	PermissionDriverView    Permission = "driver.view"
	PermissionDriverManage  Permission = "driver.manage"
	PermissionDriverApprove Permission = "driver.approve"

	// Vehicles
	PermissionVehicleView   Permission = "vehicle.view"
	PermissionVehicleManage Permission = "vehicle.manage"

	// Branches
	PermissionBranchView Permission = "branch.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionSchemeView,
		PermissionSchemeManage,
		PermissionSalaryCalculate,
		PermissionSalaryAssign,
		PermissionDutyOperate,
		PermissionDutyViewAll,
		PermissionWalletViewOwn,
		PermissionWalletViewAll,
		PermissionWalletPropose,
		PermissionWalletApprove,
		PermissionWalletMaintain,
		PermissionDriverView,
		PermissionDriverManage,
		PermissionDriverApprove,
		PermissionVehicleView,
		PermissionVehicleManage,
		PermissionBranchView,
	},
	RoleManager: {
		PermissionSchemeView,
		PermissionSalaryCalculate,
		PermissionSalaryAssign,
		PermissionDutyOperate,
		PermissionDutyViewAll,
		PermissionWalletViewOwn,
		PermissionWalletViewAll,
		PermissionWalletPropose,
		PermissionDriverView,
		PermissionDriverManage,
		PermissionVehicleView,
		PermissionVehicleManage,
		PermissionBranchView,
	},
	RoleDriver: {
		PermissionSchemeView,
		PermissionDutyOperate,
		PermissionWalletViewOwn,
		PermissionVehicleView,
		PermissionBranchView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}
