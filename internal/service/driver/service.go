package driver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/branch"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/driver"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/user"
)

type DriverServiceImpl struct {
	driverRepo driver.DriverRepository
	branchRepo branch.BranchRepository
	logger     *slog.Logger
}

func NewDriverService(driverRepo driver.DriverRepository, branchRepo branch.BranchRepository, logger *slog.Logger) driver.DriverService {
	return &DriverServiceImpl{
		driverRepo: driverRepo,
		branchRepo: branchRepo,
		logger:     logger,
	}
}

// Create implements driver.DriverService. New drivers wait for head office
// approval before they can go on duty.
func (s *DriverServiceImpl) Create(ctx context.Context, req driver.CreateDriverRequest, actor user.Actor) (driver.DriverResponse, error) {
	if err := req.Validate(); err != nil {
		return driver.DriverResponse{}, err
	}

	branchID := req.BranchID
	if branchID == nil {
		branchID = actor.BranchID
	}
	if branchID == nil {
		return driver.DriverResponse{}, driver.ErrBranchRequired
	}

	exists, err := s.branchRepo.Exists(ctx, *branchID)
	if err != nil {
		return driver.DriverResponse{}, fmt.Errorf("failed to check branch: %w", err)
	}
	if !exists {
		return driver.DriverResponse{}, branch.ErrBranchNotFound
	}

	entity := driver.Driver{
		Name:     strings.TrimSpace(req.Name),
		Mobile:   strings.TrimSpace(req.Mobile),
		BranchID: branchID,
		Status:   driver.StatusWaiting,
	}
	if actor.Role == user.RoleManager {
		entity.ManagerID = &actor.ID
	}

	created, err := s.driverRepo.Create(ctx, entity)
	if err != nil {
		return driver.DriverResponse{}, err
	}

	s.logger.InfoContext(ctx, "driver registered",
		slog.String("driver_id", created.ID),
		slog.String("branch_id", *created.BranchID),
		slog.String("created_by", actor.ID),
	)
	return driver.ToResponse(created), nil
}

func (s *DriverServiceImpl) Get(ctx context.Context, id string) (driver.DriverResponse, error) {
	d, err := s.driverRepo.FindByID(ctx, id)
	if err != nil {
		return driver.DriverResponse{}, err
	}
	return driver.ToResponse(d), nil
}

func (s *DriverServiceImpl) ListByBranch(ctx context.Context, branchID string, filter driver.ListDriversFilter) ([]driver.DriverResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.branchRepo.Exists(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to check branch: %w", err)
	}
	if !exists {
		return nil, branch.ErrBranchNotFound
	}

	drivers, err := s.driverRepo.ListByBranch(ctx, branchID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	return driver.ToResponses(drivers), nil
}

func (s *DriverServiceImpl) Approve(ctx context.Context, id string, actor user.Actor) (driver.DriverResponse, error) {
	return s.resolve(ctx, id, driver.StatusActive, actor)
}

func (s *DriverServiceImpl) Reject(ctx context.Context, id string, actor user.Actor) (driver.DriverResponse, error) {
	return s.resolve(ctx, id, driver.StatusRejected, actor)
}

func (s *DriverServiceImpl) resolve(ctx context.Context, id string, status driver.Status, actor user.Actor) (driver.DriverResponse, error) {
	d, err := s.driverRepo.Resolve(ctx, id, status, actor.ID, time.Now())
	if err != nil {
		return driver.DriverResponse{}, err
	}

	s.logger.InfoContext(ctx, "driver onboarding resolved",
		slog.String("driver_id", d.ID),
		slog.String("status", string(d.Status)),
		slog.String("resolved_by", actor.ID),
	)
	return driver.ToResponse(d), nil
}
