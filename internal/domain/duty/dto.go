package duty

import (
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type StartDutyRequest struct {
	DriverID      string           `json:"driver_id"`
	VehicleID     string           `json:"vehicle_id"`
	BranchID      string           `json:"branch_id"`
	StartOdometer *decimal.Decimal `json:"start_odometer"`
	StartFuel     *decimal.Decimal `json:"start_fuel"`
	// StartTime is RFC3339; defaults to now.
	StartTime *string `json:"start_time,omitempty"`
}

func (r *StartDutyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DriverID) {
		errs = append(errs, validator.ValidationError{
			Field:   "driver_id",
			Message: "driver_id is required",
		})
	}
	if validator.IsEmpty(r.VehicleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "vehicle_id",
			Message: "vehicle_id is required",
		})
	} else if len(r.VehicleID) > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "vehicle_id",
			Message: "vehicle_id must not exceed 50 characters",
		})
	}
	if validator.IsEmpty(r.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id is required",
		})
	}

	errs = appendReading(errs, "start_odometer", r.StartOdometer)
	errs = appendReading(errs, "start_fuel", r.StartFuel)

	if r.StartTime != nil {
		if _, ok := validator.IsValidDateTime(*r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EndDutyRequest struct {
	SessionID   string           `json:"-"` // From URL
	EndOdometer *decimal.Decimal `json:"end_odometer"`
	EndFuel     *decimal.Decimal `json:"end_fuel"`
	// EndTime is RFC3339; defaults to now.
	EndTime *string `json:"end_time,omitempty"`
}

func (r *EndDutyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SessionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "session id is required",
		})
	}
	errs = appendReading(errs, "end_odometer", r.EndOdometer)
	errs = appendReading(errs, "end_fuel", r.EndFuel)

	if r.EndTime != nil {
		if _, ok := validator.IsValidDateTime(*r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// appendReading checks an odometer or fuel reading against its
// NUMERIC(12,2) column.
func appendReading(errs validator.ValidationErrors, field string, v *decimal.Decimal) validator.ValidationErrors {
	switch {
	case v == nil:
		return append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " is required",
		})
	case v.IsNegative():
		return append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " must not be negative",
		})
	case !validator.FitsNumeric(*v, 12, 2):
		return append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " must have at most 2 decimal places and be below 10000000000",
		})
	}
	return errs
}

type SessionResponse struct {
	ID            string           `json:"id"`
	DriverID      string           `json:"driver_id"`
	VehicleID     string           `json:"vehicle_id"`
	BranchID      string           `json:"branch_id"`
	Status        Status           `json:"status"`
	StartOdometer decimal.Decimal  `json:"start_odometer"`
	EndOdometer   *decimal.Decimal `json:"end_odometer"`
	StartFuel     decimal.Decimal  `json:"start_fuel"`
	EndFuel       *decimal.Decimal `json:"end_fuel"`
	Distance      *decimal.Decimal `json:"distance"`
	FuelConsumed  *decimal.Decimal `json:"fuel_consumed"`
	StartTime     time.Time        `json:"start_time"`
	EndTime       *time.Time       `json:"end_time"`
}

func ToResponse(s Session) SessionResponse {
	return SessionResponse{
		ID:            s.ID,
		DriverID:      s.DriverID,
		VehicleID:     s.VehicleID,
		BranchID:      s.BranchID,
		Status:        s.Status,
		StartOdometer: s.StartOdometer,
		EndOdometer:   s.EndOdometer,
		StartFuel:     s.StartFuel,
		EndFuel:       s.EndFuel,
		Distance:      s.Distance,
		FuelConsumed:  s.FuelConsumed,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
	}
}

func ToResponses(sessions []Session) []SessionResponse {
	result := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		result = append(result, ToResponse(s))
	}
	return result
}
