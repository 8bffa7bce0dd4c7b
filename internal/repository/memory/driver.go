package memory

import (
	"context"
	"sort"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/driver"
)

type driverRepository struct {
	store *Store
}

func NewDriverRepository(store *Store) driver.DriverRepository {
	return &driverRepository{store: store}
}

func (r *driverRepository) Create(ctx context.Context, d driver.Driver) (driver.Driver, error) {
	err := r.store.write(ctx, func() error {
		for _, existing := range r.store.drivers {
			if existing.Mobile == d.Mobile {
				return driver.ErrMobileExists
			}
		}
		now := time.Now()
		d.ID = newID()
		d.OnDuty = false
		d.CreatedAt = now
		d.UpdatedAt = now
		r.store.drivers[d.ID] = d
		return nil
	})
	if err != nil {
		return driver.Driver{}, err
	}
	return d, nil
}

func (r *driverRepository) FindByID(ctx context.Context, id string) (driver.Driver, error) {
	var d driver.Driver
	err := r.store.read(ctx, func() error {
		found, ok := r.store.drivers[id]
		if !ok {
			return driver.ErrDriverNotFound
		}
		d = found
		return nil
	})
	return d, err
}

func (r *driverRepository) ListByBranch(ctx context.Context, branchID string, filter driver.ListDriversFilter) ([]driver.Driver, error) {
	drivers := []driver.Driver{}
	err := r.store.read(ctx, func() error {
		for _, d := range r.store.drivers {
			if d.BranchID == nil || *d.BranchID != branchID {
				continue
			}
			if filter.Status != nil && d.Status != *filter.Status {
				continue
			}
			drivers = append(drivers, d)
		}
		return nil
	})
	sort.Slice(drivers, func(i, j int) bool { return drivers[i].Name < drivers[j].Name })
	return drivers, err
}

func (r *driverRepository) SetDutyStatus(ctx context.Context, id string, onDuty bool) error {
	return r.store.write(ctx, func() error {
		d, ok := r.store.drivers[id]
		if !ok {
			return driver.ErrDriverNotFound
		}
		d.OnDuty = onDuty
		d.UpdatedAt = time.Now()
		r.store.drivers[id] = d
		return nil
	})
}

func (r *driverRepository) Resolve(ctx context.Context, id string, status driver.Status, resolvedBy string, resolvedAt time.Time) (driver.Driver, error) {
	var d driver.Driver
	err := r.store.write(ctx, func() error {
		found, ok := r.store.drivers[id]
		if !ok {
			return driver.ErrDriverNotFound
		}
		if found.Status != driver.StatusWaiting {
			return driver.ErrDriverAlreadyProcessed
		}
		found.Status = status
		found.ApprovedBy = &resolvedBy
		found.ApprovedAt = &resolvedAt
		found.UpdatedAt = resolvedAt
		r.store.drivers[id] = found
		d = found
		return nil
	})
	return d, err
}
