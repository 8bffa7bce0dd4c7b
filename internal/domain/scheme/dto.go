package scheme

import (
	"strings"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SchemeResponse struct {
	Name                  string           `json:"name"`
	Frequency             Frequency        `json:"frequency"`
	Target                *decimal.Decimal `json:"target"`
	IncentiveBelowPct     *decimal.Decimal `json:"incentive_below_pct"`
	IncentiveAbovePct     *decimal.Decimal `json:"incentive_above_pct"`
	OperatorCommissionPct *decimal.Decimal `json:"operator_commission_pct"`
	CNGAllowancePct       *decimal.Decimal `json:"cng_allowance_pct"`
	ExtraRule             *string          `json:"extra_rule,omitempty"`
	Notes                 *string          `json:"notes,omitempty"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

func ToResponse(s Scheme) SchemeResponse {
	return SchemeResponse{
		Name:                  s.Name,
		Frequency:             s.Frequency,
		Target:                s.Target,
		IncentiveBelowPct:     s.IncentiveBelowPct,
		IncentiveAbovePct:     s.IncentiveAbovePct,
		OperatorCommissionPct: s.OperatorCommissionPct,
		CNGAllowancePct:       s.CNGAllowancePct,
		ExtraRule:             s.ExtraRule,
		Notes:                 s.Notes,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

// SchemeRequest is the full record for create and replace. Omitted
// percentages stay unset and fall back to the calculator defaults.
type SchemeRequest struct {
	Name                  string           `json:"name"`
	Frequency             Frequency        `json:"frequency"`
	Target                *decimal.Decimal `json:"target,omitempty"`
	IncentiveBelowPct     *decimal.Decimal `json:"incentive_below_pct,omitempty"`
	IncentiveAbovePct     *decimal.Decimal `json:"incentive_above_pct,omitempty"`
	OperatorCommissionPct *decimal.Decimal `json:"operator_commission_pct,omitempty"`
	CNGAllowancePct       *decimal.Decimal `json:"cng_allowance_pct,omitempty"`
	ExtraRule             *string          `json:"extra_rule,omitempty"`
	Notes                 *string          `json:"notes,omitempty"`
}

func (r *SchemeRequest) Validate() error {
	var errs validator.ValidationErrors

	// Name
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

	// Frequency
	if !r.Frequency.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "frequency",
			Message: "frequency must be one of: daily, weekly, monthly, 12hr, rental",
		})
	}

	// Target
	if r.Target != nil && r.Target.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "target",
			Message: "target must not be negative",
		})
	} else if r.Target != nil && !validator.FitsNumeric(*r.Target, 14, 2) {
		errs = append(errs, validator.ValidationError{
			Field:   "target",
			Message: "target must have at most 2 decimal places and be below 1000000000000",
		})
	}

	// Percentages
	percentages := []struct {
		field string
		value *decimal.Decimal
	}{
		{"incentive_below_pct", r.IncentiveBelowPct},
		{"incentive_above_pct", r.IncentiveAbovePct},
		{"operator_commission_pct", r.OperatorCommissionPct},
		{"cng_allowance_pct", r.CNGAllowancePct},
	}
	for _, p := range percentages {
		if p.value != nil && !validator.IsPercentage(*p.value) {
			errs = append(errs, validator.ValidationError{
				Field:   p.field,
				Message: p.field + " must be between 0 and 100",
			})
		} else if p.value != nil && !validator.FitsNumeric(*p.value, 5, 2) {
			errs = append(errs, validator.ValidationError{
				Field:   p.field,
				Message: p.field + " must have at most 2 decimal places",
			})
		}
	}

	// Extra rule
	if r.ExtraRule != nil && !validator.IsEmpty(*r.ExtraRule) {
		if _, ok := ParsePickupBonus(*r.ExtraRule); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "extra_rule",
				Message: "extra_rule must look like pickups_<amount> or daily_<count>_pickups_<amount>",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToScheme builds the entity, normalising an empty extra rule to unset.
func (r *SchemeRequest) ToScheme() Scheme {
	s := Scheme{
		Name:                  strings.TrimSpace(r.Name),
		Frequency:             r.Frequency,
		Target:                r.Target,
		IncentiveBelowPct:     r.IncentiveBelowPct,
		IncentiveAbovePct:     r.IncentiveAbovePct,
		OperatorCommissionPct: r.OperatorCommissionPct,
		CNGAllowancePct:       r.CNGAllowancePct,
		ExtraRule:             r.ExtraRule,
		Notes:                 r.Notes,
	}
	if s.ExtraRule != nil && validator.IsEmpty(*s.ExtraRule) {
		s.ExtraRule = nil
	}
	return s
}
