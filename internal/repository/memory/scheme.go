package memory

import (
	"context"
	"sort"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/scheme"
)

type schemeRepository struct {
	store *Store
}

func NewSchemeRepository(store *Store) scheme.SchemeRepository {
	return &schemeRepository{store: store}
}

func (r *schemeRepository) Create(ctx context.Context, s scheme.Scheme) (scheme.Scheme, error) {
	err := r.store.write(ctx, func() error {
		if _, exists := r.store.schemes[s.Name]; exists {
			return scheme.ErrSchemeNameExists
		}
		now := time.Now()
		s.CreatedAt = now
		s.UpdatedAt = now
		r.store.schemes[s.Name] = s
		return nil
	})
	if err != nil {
		return scheme.Scheme{}, err
	}
	return s, nil
}

func (r *schemeRepository) GetByName(ctx context.Context, name string) (scheme.Scheme, error) {
	var s scheme.Scheme
	err := r.store.read(ctx, func() error {
		found, ok := r.store.schemes[name]
		if !ok {
			return scheme.ErrSchemeNotFound
		}
		s = found
		return nil
	})
	return s, err
}

func (r *schemeRepository) List(ctx context.Context) ([]scheme.Scheme, error) {
	schemes := []scheme.Scheme{}
	err := r.store.read(ctx, func() error {
		for _, s := range r.store.schemes {
			schemes = append(schemes, s)
		}
		return nil
	})
	sort.Slice(schemes, func(i, j int) bool { return schemes[i].Name < schemes[j].Name })
	return schemes, err
}

func (r *schemeRepository) Replace(ctx context.Context, s scheme.Scheme) (scheme.Scheme, error) {
	err := r.store.write(ctx, func() error {
		existing, ok := r.store.schemes[s.Name]
		if !ok {
			return scheme.ErrSchemeNotFound
		}
		s.CreatedAt = existing.CreatedAt
		s.UpdatedAt = time.Now()
		r.store.schemes[s.Name] = s
		return nil
	})
	if err != nil {
		return scheme.Scheme{}, err
	}
	return s, nil
}
