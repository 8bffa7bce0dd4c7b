package vehicle

import (
	"strings"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/pkg/validator"
)

type VehicleResponse struct {
	ID              string    `json:"id"`
	VehicleNumber   string    `json:"vehicle_number"`
	Brand           string    `json:"brand"`
	Model           string    `json:"model"`
	FuelType        FuelType  `json:"fuel_type,omitempty"`
	BranchID        string    `json:"branch_id"`
	InsuranceExpiry *string   `json:"insurance_expiry,omitempty"`
	PermitExpiry    *string   `json:"permit_expiry,omitempty"`
	FitnessExpiry   *string   `json:"fitness_expiry,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToResponse(v Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:              v.ID,
		VehicleNumber:   v.VehicleNumber,
		Brand:           v.Brand,
		Model:           v.Model,
		FuelType:        v.FuelType,
		BranchID:        v.BranchID,
		InsuranceExpiry: formatDate(v.InsuranceExpiry),
		PermitExpiry:    formatDate(v.PermitExpiry),
		FitnessExpiry:   formatDate(v.FitnessExpiry),
		CreatedAt:       v.CreatedAt,
	}
}

func ToResponses(vehicles []Vehicle) []VehicleResponse {
	result := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		result = append(result, ToResponse(v))
	}
	return result
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

// CreateVehicleRequest registers a vehicle. Expiry dates are YYYY-MM-DD and
// BranchID is taken from the manager's token when omitted.
type CreateVehicleRequest struct {
	VehicleNumber   string   `json:"vehicle_number"`
	Brand           string   `json:"brand"`
	Model           string   `json:"model"`
	FuelType        FuelType `json:"fuel_type,omitempty"`
	BranchID        *string  `json:"branch_id,omitempty"`
	InsuranceExpiry *string  `json:"insurance_expiry,omitempty"`
	PermitExpiry    *string  `json:"permit_expiry,omitempty"`
	FitnessExpiry   *string  `json:"fitness_expiry,omitempty"`
}

func (r *CreateVehicleRequest) Validate() error {
	var errs validator.ValidationErrors

	number := NormalizeNumber(r.VehicleNumber)
	if number == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "vehicle_number",
			Message: "vehicle_number is required",
		})
	} else if len(number) > 20 {
		errs = append(errs, validator.ValidationError{
			Field:   "vehicle_number",
			Message: "vehicle_number must not exceed 20 characters",
		})
	}

	if validator.IsEmpty(r.Model) {
		errs = append(errs, validator.ValidationError{
			Field:   "model",
			Message: "model is required",
		})
	} else if len(r.Model) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "model",
			Message: "model must not exceed 100 characters",
		})
	}

	if len(r.Brand) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "brand",
			Message: "brand must not exceed 100 characters",
		})
	}

	if r.FuelType != "" && !r.FuelType.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "fuel_type",
			Message: "fuel_type must be one of: petrol, diesel, cng, electric",
		})
	}

	if r.BranchID != nil && validator.IsEmpty(*r.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id must not be empty if provided",
		})
	}

	expiries := []struct {
		field string
		value *string
	}{
		{"insurance_expiry", r.InsuranceExpiry},
		{"permit_expiry", r.PermitExpiry},
		{"fitness_expiry", r.FitnessExpiry},
	}
	for _, e := range expiries {
		if e.value == nil {
			continue
		}
		if _, ok := validator.IsValidDate(*e.value); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   e.field,
				Message: e.field + " must be a date in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToVehicle builds the entity from a validated request.
func (r *CreateVehicleRequest) ToVehicle(branchID string) Vehicle {
	return Vehicle{
		VehicleNumber:   NormalizeNumber(r.VehicleNumber),
		Brand:           strings.TrimSpace(r.Brand),
		Model:           strings.TrimSpace(r.Model),
		FuelType:        r.FuelType,
		BranchID:        branchID,
		InsuranceExpiry: parseDate(r.InsuranceExpiry),
		PermitExpiry:    parseDate(r.PermitExpiry),
		FitnessExpiry:   parseDate(r.FitnessExpiry),
	}
}

func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, ok := validator.IsValidDate(*s)
	if !ok {
		return nil
	}
	return &t
}
