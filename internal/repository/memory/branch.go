package memory

import (
	"context"
	"sort"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/branch"
)

type branchRepository struct {
	store *Store
}

func NewBranchRepository(store *Store) branch.BranchRepository {
	return &branchRepository{store: store}
}

func (r *branchRepository) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	err := r.store.write(ctx, func() error {
		for _, existing := range r.store.branches {
			if existing.Name == b.Name {
				return branch.ErrBranchNameExists
			}
		}
		now := time.Now()
		b.ID = newID()
		b.CreatedAt = now
		b.UpdatedAt = now
		r.store.branches[b.ID] = b
		return nil
	})
	if err != nil {
		return branch.Branch{}, err
	}
	return b, nil
}

func (r *branchRepository) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	var b branch.Branch
	err := r.store.read(ctx, func() error {
		found, ok := r.store.branches[id]
		if !ok {
			return branch.ErrBranchNotFound
		}
		b = found
		return nil
	})
	return b, err
}

func (r *branchRepository) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.store.read(ctx, func() error {
		_, ok = r.store.branches[id]
		return nil
	})
	return ok, err
}

func (r *branchRepository) List(ctx context.Context) ([]branch.Branch, error) {
	branches := []branch.Branch{}
	err := r.store.read(ctx, func() error {
		for _, b := range r.store.branches {
			branches = append(branches, b)
		}
		return nil
	})
	sort.Slice(branches, func(i, j int) bool { return branches[i].Name < branches[j].Name })
	return branches, err
}
