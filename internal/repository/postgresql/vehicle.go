package postgresql

import (
	"context"
	"fmt"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/branch"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/vehicle"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/database"
)

type vehicleRepositoryImpl struct {
	db *database.DB
}

func NewVehicleRepository(db *database.DB) vehicle.VehicleRepository {
	return &vehicleRepositoryImpl{db: db}
}

const vehicleColumns = `id, vehicle_number, brand, model, fuel_type, branch_id,
	insurance_expiry, permit_expiry, fitness_expiry, created_at, updated_at`

func scanVehicle(row rowScanner) (vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	err := row.Scan(
		&v.ID,
		&v.VehicleNumber,
		&v.Brand,
		&v.Model,
		&v.FuelType,
		&v.BranchID,
		&v.InsuranceExpiry,
		&v.PermitExpiry,
		&v.FitnessExpiry,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	return v, err
}

// Create implements vehicle.VehicleRepository.
func (r *vehicleRepositoryImpl) Create(ctx context.Context, v vehicle.Vehicle) (vehicle.Vehicle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO vehicles (
			id, vehicle_number, brand, model, fuel_type, branch_id,
			insurance_expiry, permit_expiry, fitness_expiry, created_at, updated_at
		)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + vehicleColumns

	result, err := scanVehicle(q.QueryRow(ctx, query,
		v.VehicleNumber,
		v.Brand,
		v.Model,
		v.FuelType,
		v.BranchID,
		v.InsuranceExpiry,
		v.PermitExpiry,
		v.FitnessExpiry,
	))
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return vehicle.Vehicle{}, vehicle.ErrVehicleNumberExists
		case isForeignKeyViolation(err), isNoRows(err):
			return vehicle.Vehicle{}, branch.ErrBranchNotFound
		}
		return vehicle.Vehicle{}, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return result, nil
}

// GetByID implements vehicle.VehicleRepository.
func (r *vehicleRepositoryImpl) GetByID(ctx context.Context, id string) (vehicle.Vehicle, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	result, err := scanVehicle(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return vehicle.Vehicle{}, vehicle.ErrVehicleNotFound
		}
		return vehicle.Vehicle{}, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return result, nil
}

// ListByBranch implements vehicle.VehicleRepository.
func (r *vehicleRepositoryImpl) ListByBranch(ctx context.Context, branchID string) ([]vehicle.Vehicle, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE branch_id = $1 ORDER BY vehicle_number ASC`

	rows, err := q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []vehicle.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return vehicles, nil
}
