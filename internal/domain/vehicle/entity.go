package vehicle

import (
	"strings"
	"time"
)

type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelCNG      FuelType = "cng"
	FuelElectric FuelType = "electric"
)

func (f FuelType) Valid() bool {
	switch f {
	case FuelPetrol, FuelDiesel, FuelCNG, FuelElectric:
		return true
	}
	return false
}

type Vehicle struct {
	ID              string
	VehicleNumber   string
	Brand           string
	Model           string
	FuelType        FuelType
	BranchID        string
	InsuranceExpiry *time.Time
	PermitExpiry    *time.Time
	FitnessExpiry   *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BelongsTo reports whether the vehicle is registered to branchID.
func (v Vehicle) BelongsTo(branchID string) bool {
	return v.BranchID == branchID
}

// NormalizeNumber canonicalises a registration plate so "tn 09 ab 1234" and
// "TN09AB1234" collide on the unique index.
func NormalizeNumber(number string) string {
	return strings.ToUpper(strings.Join(strings.Fields(number), ""))
}
