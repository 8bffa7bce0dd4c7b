package driver

import "time"

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusActive   Status = "active"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusWaiting, StatusActive, StatusRejected:
		return true
	}
	return false
}

type Driver struct {
	ID         string
	Name       string
	Mobile     string
	BranchID   *string
	ManagerID  *string
	Status     Status
	OnDuty     bool
	ApprovedBy *string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CanStartDuty is true once onboarding has been approved.
func (d Driver) CanStartDuty() bool {
	return d.Status == StatusActive
}
