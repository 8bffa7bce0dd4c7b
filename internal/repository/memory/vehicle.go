package memory

import (
	"context"
	"sort"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/vehicle"
)

type vehicleRepository struct {
	store *Store
}

func NewVehicleRepository(store *Store) vehicle.VehicleRepository {
	return &vehicleRepository{store: store}
}

func (r *vehicleRepository) Create(ctx context.Context, v vehicle.Vehicle) (vehicle.Vehicle, error) {
	err := r.store.write(ctx, func() error {
		for _, existing := range r.store.vehicles {
			if existing.VehicleNumber == v.VehicleNumber {
				return vehicle.ErrVehicleNumberExists
			}
		}
		now := time.Now()
		v.ID = newID()
		v.CreatedAt = now
		v.UpdatedAt = now
		r.store.vehicles[v.ID] = v
		return nil
	})
	if err != nil {
		return vehicle.Vehicle{}, err
	}
	return v, nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	err := r.store.read(ctx, func() error {
		found, ok := r.store.vehicles[id]
		if !ok {
			return vehicle.ErrVehicleNotFound
		}
		v = found
		return nil
	})
	return v, err
}

func (r *vehicleRepository) ListByBranch(ctx context.Context, branchID string) ([]vehicle.Vehicle, error) {
	vehicles := []vehicle.Vehicle{}
	err := r.store.read(ctx, func() error {
		for _, v := range r.store.vehicles {
			if v.BranchID == branchID {
				vehicles = append(vehicles, v)
			}
		}
		return nil
	})
	sort.Slice(vehicles, func(i, j int) bool { return vehicles[i].VehicleNumber < vehicles[j].VehicleNumber })
	return vehicles, err
}
