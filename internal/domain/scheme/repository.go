package scheme

import "context"

type SchemeRepository interface {
	Create(ctx context.Context, s Scheme) (Scheme, error)
	GetByName(ctx context.Context, name string) (Scheme, error)
	List(ctx context.Context) ([]Scheme, error)
	Replace(ctx context.Context, s Scheme) (Scheme, error)
}
