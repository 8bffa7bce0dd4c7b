package memory

import (
	"context"
	"sort"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/driver"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/salary"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/scheme"
)

type salaryAssignmentRepository struct {
	store *Store
}

func NewSalaryAssignmentRepository(store *Store) salary.AssignmentRepository {
	return &salaryAssignmentRepository{store: store}
}

func (r *salaryAssignmentRepository) Upsert(ctx context.Context, a salary.Assignment) (salary.Assignment, error) {
	err := r.store.write(ctx, func() error {
		if _, ok := r.store.drivers[a.DriverID]; !ok {
			return driver.ErrDriverNotFound
		}
		if _, ok := r.store.schemes[a.SchemeName]; !ok {
			return scheme.ErrSchemeNotFound
		}
		now := time.Now()
		a.CreatedAt = now
		if existing, ok := r.store.assignments[a.DriverID]; ok {
			a.CreatedAt = existing.CreatedAt
		}
		a.UpdatedAt = now
		r.store.assignments[a.DriverID] = a
		return nil
	})
	if err != nil {
		return salary.Assignment{}, err
	}
	return a, nil
}

func (r *salaryAssignmentRepository) GetByDriverID(ctx context.Context, driverID string) (salary.Assignment, error) {
	var a salary.Assignment
	err := r.store.read(ctx, func() error {
		found, ok := r.store.assignments[driverID]
		if !ok {
			return salary.ErrAssignmentNotFound
		}
		a = found
		return nil
	})
	return a, err
}

func (r *salaryAssignmentRepository) ListByBranch(ctx context.Context, branchID string) ([]salary.Assignment, error) {
	assignments := []salary.Assignment{}
	err := r.store.read(ctx, func() error {
		for _, a := range r.store.assignments {
			if a.BranchID != nil && *a.BranchID == branchID {
				assignments = append(assignments, a)
			}
		}
		return nil
	})
	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].UpdatedAt.After(assignments[j].UpdatedAt)
	})
	return assignments, err
}
