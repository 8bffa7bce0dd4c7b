package user

type Role string

const (
	RoleAdmin   Role = "admin"   // Head office - approves wallet transactions and drivers
	RoleManager Role = "manager" // Runs a single branch
	RoleDriver  Role = "driver"  // Operates duty sessions for themself
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleDriver:
		return true
	}
	return false
}

// Actor is the authenticated caller handed to services. For drivers, ID is the
// driver's own record ID.
type Actor struct {
	ID       string
	Role     Role
	BranchID *string
}

// IsAdmin checks if the actor has head office access
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsManager checks if actor is manager or admin
func (a Actor) IsManager() bool {
	return a.Role == RoleManager || a.Role == RoleAdmin
}

// CanAccessBranch reports whether the actor may read data scoped to branchID.
// Admins see every branch; everyone else only their own.
func (a Actor) CanAccessBranch(branchID string) bool {
	if a.IsAdmin() {
		return true
	}
	return a.BranchID != nil && *a.BranchID == branchID
}

// CanActForDriver reports whether the actor may operate on the given driver's
// own records. Drivers are limited to themselves; branch checks for managers
// happen against the driver's branch.
func (a Actor) CanActForDriver(driverID string) bool {
	if a.Role == RoleDriver {
		return a.ID == driverID
	}
	return a.IsManager()
}
