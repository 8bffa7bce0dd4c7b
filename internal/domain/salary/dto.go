package salary

import (
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// CalculateRequest names the scheme directly or through the driver's
// assignment. Missing figures count as zero.
type CalculateRequest struct {
	SchemeName     *string          `json:"scheme_name,omitempty"`
	DriverID       *string          `json:"driver_id,omitempty"`
	TotalEarnings  *decimal.Decimal `json:"total_earnings,omitempty"`
	CommissionBase *decimal.Decimal `json:"commission_base,omitempty"`
	CNGSpend       *decimal.Decimal `json:"cng_spend,omitempty"`
	PickupCount    *int             `json:"pickup_count,omitempty"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	hasScheme := r.SchemeName != nil && !validator.IsEmpty(*r.SchemeName)
	hasDriver := r.DriverID != nil && !validator.IsEmpty(*r.DriverID)
	if hasScheme == hasDriver {
		errs = append(errs, validator.ValidationError{
			Field:   "scheme_name",
			Message: "exactly one of scheme_name or driver_id is required",
		})
	}

	amounts := []struct {
		field string
		value *decimal.Decimal
	}{
		{"total_earnings", r.TotalEarnings},
		{"commission_base", r.CommissionBase},
		{"cng_spend", r.CNGSpend},
	}
	for _, a := range amounts {
		if a.value != nil && a.value.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   a.field,
				Message: a.field + " must not be negative",
			})
		}
	}

	if r.PickupCount != nil && *r.PickupCount < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "pickup_count",
			Message: "pickup_count must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Figures fills an Input with the request's numbers, defaulting absent ones to zero.
func (r *CalculateRequest) Figures() Input {
	in := Input{
		TotalEarnings:  decimal.Zero,
		CommissionBase: decimal.Zero,
		CNGSpend:       decimal.Zero,
	}
	if r.TotalEarnings != nil {
		in.TotalEarnings = *r.TotalEarnings
	}
	if r.CommissionBase != nil {
		in.CommissionBase = *r.CommissionBase
	}
	if r.CNGSpend != nil {
		in.CNGSpend = *r.CNGSpend
	}
	if r.PickupCount != nil {
		in.PickupCount = *r.PickupCount
	}
	return in
}

type CalculateResponse struct {
	SchemeName string  `json:"scheme_name"`
	DriverID   *string `json:"driver_id,omitempty"`
	Result
}

type AssignRequest struct {
	DriverID   string `json:"-"` // From URL
	SchemeName string `json:"scheme_name"`
}

func (r *AssignRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DriverID) {
		errs = append(errs, validator.ValidationError{
			Field:   "driver_id",
			Message: "driver_id is required",
		})
	}
	if validator.IsEmpty(r.SchemeName) {
		errs = append(errs, validator.ValidationError{
			Field:   "scheme_name",
			Message: "scheme_name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignmentResponse struct {
	DriverID   string    `json:"driver_id"`
	SchemeName string    `json:"scheme_name"`
	BranchID   *string   `json:"branch_id,omitempty"`
	AssignedBy string    `json:"assigned_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToAssignmentResponse(a Assignment) AssignmentResponse {
	return AssignmentResponse{
		DriverID:   a.DriverID,
		SchemeName: a.SchemeName,
		BranchID:   a.BranchID,
		AssignedBy: a.AssignedBy,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
