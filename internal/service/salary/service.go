package salary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/branch"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/driver"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/salary"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/scheme"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/user"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/validator"
)

type SalaryServiceImpl struct {
	calculator     salary.Calculator
	schemeRepo     scheme.SchemeRepository
	assignmentRepo salary.AssignmentRepository
	driverRepo     driver.DriverRepository
	branchRepo     branch.BranchRepository
	logger         *slog.Logger
}

func NewSalaryService(
	calculator salary.Calculator,
	schemeRepo scheme.SchemeRepository,
	assignmentRepo salary.AssignmentRepository,
	driverRepo driver.DriverRepository,
	branchRepo branch.BranchRepository,
	logger *slog.Logger,
) salary.SalaryService {
	return &SalaryServiceImpl{
		calculator:     calculator,
		schemeRepo:     schemeRepo,
		assignmentRepo: assignmentRepo,
		driverRepo:     driverRepo,
		branchRepo:     branchRepo,
		logger:         logger,
	}
}

// Calculate implements salary.SalaryService.
func (s *SalaryServiceImpl) Calculate(ctx context.Context, req salary.CalculateRequest) (salary.CalculateResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.CalculateResponse{}, err
	}

	sc, err := s.resolveScheme(ctx, req)
	if err != nil {
		return salary.CalculateResponse{}, err
	}

	in := req.Figures()
	in.Scheme = &sc
	result := s.calculator.Calculate(in)

	return salary.CalculateResponse{
		SchemeName: sc.Name,
		DriverID:   req.DriverID,
		Result:     result,
	}, nil
}

func (s *SalaryServiceImpl) resolveScheme(ctx context.Context, req salary.CalculateRequest) (scheme.Scheme, error) {
	if req.SchemeName != nil && !validator.IsEmpty(*req.SchemeName) {
		return s.schemeRepo.GetByName(ctx, *req.SchemeName)
	}

	if _, err := s.driverRepo.FindByID(ctx, *req.DriverID); err != nil {
		return scheme.Scheme{}, err
	}
	assignment, err := s.assignmentRepo.GetByDriverID(ctx, *req.DriverID)
	if err != nil {
		return scheme.Scheme{}, err
	}
	sc, err := s.schemeRepo.GetByName(ctx, assignment.SchemeName)
	if err != nil {
		return scheme.Scheme{}, fmt.Errorf("assigned scheme %q: %w", assignment.SchemeName, err)
	}
	return sc, nil
}

// Assign implements salary.SalaryService.
func (s *SalaryServiceImpl) Assign(ctx context.Context, req salary.AssignRequest, actor user.Actor) (salary.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.AssignmentResponse{}, err
	}

	d, err := s.driverRepo.FindByID(ctx, req.DriverID)
	if err != nil {
		return salary.AssignmentResponse{}, err
	}
	sc, err := s.schemeRepo.GetByName(ctx, req.SchemeName)
	if err != nil {
		return salary.AssignmentResponse{}, err
	}

	assignment, err := s.assignmentRepo.Upsert(ctx, salary.Assignment{
		DriverID:   d.ID,
		SchemeName: sc.Name,
		BranchID:   d.BranchID,
		AssignedBy: actor.ID,
	})
	if err != nil {
		return salary.AssignmentResponse{}, err
	}

	s.logger.InfoContext(ctx, "salary scheme assigned",
		slog.String("driver_id", d.ID),
		slog.String("scheme", sc.Name),
		slog.String("assigned_by", actor.ID),
	)
	return salary.ToAssignmentResponse(assignment), nil
}

// GetAssignment implements salary.SalaryService.
func (s *SalaryServiceImpl) GetAssignment(ctx context.Context, driverID string) (salary.AssignmentResponse, error) {
	if _, err := s.driverRepo.FindByID(ctx, driverID); err != nil {
		return salary.AssignmentResponse{}, err
	}
	assignment, err := s.assignmentRepo.GetByDriverID(ctx, driverID)
	if err != nil {
		return salary.AssignmentResponse{}, err
	}
	return salary.ToAssignmentResponse(assignment), nil
}

// ListAssignments implements salary.SalaryService.
func (s *SalaryServiceImpl) ListAssignments(ctx context.Context, branchID string) ([]salary.AssignmentResponse, error) {
	exists, err := s.branchRepo.Exists(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to check branch: %w", err)
	}
	if !exists {
		return nil, branch.ErrBranchNotFound
	}

	assignments, err := s.assignmentRepo.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary assignments: %w", err)
	}

	result := make([]salary.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		result = append(result, salary.ToAssignmentResponse(a))
	}
	return result, nil
}
