package scheme

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/scheme"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/validator"
)

type SchemeServiceImpl struct {
	schemeRepo scheme.SchemeRepository
	logger     *slog.Logger
}

func NewSchemeService(schemeRepo scheme.SchemeRepository, logger *slog.Logger) scheme.SchemeService {
	return &SchemeServiceImpl{
		schemeRepo: schemeRepo,
		logger:     logger,
	}
}

// Get implements scheme.SchemeService.
func (s *SchemeServiceImpl) Get(ctx context.Context, name string) (scheme.SchemeResponse, error) {
	found, err := s.schemeRepo.GetByName(ctx, name)
	if err != nil {
		return scheme.SchemeResponse{}, err
	}
	return scheme.ToResponse(found), nil
}

// List implements scheme.SchemeService.
func (s *SchemeServiceImpl) List(ctx context.Context) ([]scheme.SchemeResponse, error) {
	schemes, err := s.schemeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary schemes: %w", err)
	}

	result := make([]scheme.SchemeResponse, 0, len(schemes))
	for _, sc := range schemes {
		result = append(result, scheme.ToResponse(sc))
	}
	return result, nil
}

// Create implements scheme.SchemeService.
func (s *SchemeServiceImpl) Create(ctx context.Context, req scheme.SchemeRequest) (scheme.SchemeResponse, error) {
	if err := req.Validate(); err != nil {
		return scheme.SchemeResponse{}, err
	}

	created, err := s.schemeRepo.Create(ctx, req.ToScheme())
	if err != nil {
		return scheme.SchemeResponse{}, err
	}

	s.logger.InfoContext(ctx, "salary scheme created",
		slog.String("scheme", created.Name),
		slog.String("frequency", string(created.Frequency)),
	)
	return scheme.ToResponse(created), nil
}

// Replace implements scheme.SchemeService. The scheme is identified by name,
// which cannot change.
func (s *SchemeServiceImpl) Replace(ctx context.Context, name string, req scheme.SchemeRequest) (scheme.SchemeResponse, error) {
	if validator.IsEmpty(req.Name) {
		req.Name = name
	}
	if strings.TrimSpace(req.Name) != name {
		return scheme.SchemeResponse{}, scheme.ErrSchemeRenamed
	}
	if err := req.Validate(); err != nil {
		return scheme.SchemeResponse{}, err
	}

	replaced, err := s.schemeRepo.Replace(ctx, req.ToScheme())
	if err != nil {
		return scheme.SchemeResponse{}, err
	}

	s.logger.InfoContext(ctx, "salary scheme replaced", slog.String("scheme", replaced.Name))
	return scheme.ToResponse(replaced), nil
}
