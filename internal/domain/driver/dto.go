package driver

import (
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/pkg/validator"
)

type DriverResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Mobile     string     `json:"mobile"`
	BranchID   *string    `json:"branch_id,omitempty"`
	ManagerID  *string    `json:"manager_id,omitempty"`
	Status     Status     `json:"status"`
	OnDuty     bool       `json:"on_duty"`
	ApprovedBy *string    `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func ToResponse(d Driver) DriverResponse {
	return DriverResponse{
		ID:         d.ID,
		Name:       d.Name,
		Mobile:     d.Mobile,
		BranchID:   d.BranchID,
		ManagerID:  d.ManagerID,
		Status:     d.Status,
		OnDuty:     d.OnDuty,
		ApprovedBy: d.ApprovedBy,
		ApprovedAt: d.ApprovedAt,
		CreatedAt:  d.CreatedAt,
	}
}

func ToResponses(drivers []Driver) []DriverResponse {
	result := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		result = append(result, ToResponse(d))
	}
	return result
}

// CreateDriverRequest registers a driver for onboarding. BranchID is taken from
// the manager's token when omitted.
type CreateDriverRequest struct {
	Name     string  `json:"name"`
	Mobile   string  `json:"mobile"`
	BranchID *string `json:"branch_id,omitempty"`
}

func (r *CreateDriverRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if validator.IsEmpty(r.Mobile) {
		errs = append(errs, validator.ValidationError{
			Field:   "mobile",
			Message: "mobile is required",
		})
	} else if !validator.IsValidMobile(r.Mobile) {
		errs = append(errs, validator.ValidationError{
			Field:   "mobile",
			Message: "mobile must be a valid 10 digit number",
		})
	}

	if r.BranchID != nil && validator.IsEmpty(*r.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id must not be empty if provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListDriversFilter narrows a branch listing by onboarding status.
type ListDriversFilter struct {
	Status *Status
}

func (f *ListDriversFilter) Validate() error {
	if f.Status != nil && !f.Status.Valid() {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be one of: waiting, active, rejected",
		}}
	}
	return nil
}
