package scheme

import "context"

type SchemeService interface {
	Get(ctx context.Context, name string) (SchemeResponse, error)
	List(ctx context.Context) ([]SchemeResponse, error)
	Create(ctx context.Context, req SchemeRequest) (SchemeResponse, error)
	Replace(ctx context.Context, name string, req SchemeRequest) (SchemeResponse, error)
}
