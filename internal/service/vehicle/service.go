package vehicle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/branch"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/user"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/vehicle"
)

type VehicleServiceImpl struct {
	vehicleRepo vehicle.VehicleRepository
	branchRepo  branch.BranchRepository
	logger      *slog.Logger
}

func NewVehicleService(vehicleRepo vehicle.VehicleRepository, branchRepo branch.BranchRepository, logger *slog.Logger) vehicle.VehicleService {
	return &VehicleServiceImpl{
		vehicleRepo: vehicleRepo,
		branchRepo:  branchRepo,
		logger:      logger,
	}
}

// Create implements vehicle.VehicleService.
func (s *VehicleServiceImpl) Create(ctx context.Context, req vehicle.CreateVehicleRequest, actor user.Actor) (vehicle.VehicleResponse, error) {
	if err := req.Validate(); err != nil {
		return vehicle.VehicleResponse{}, err
	}

	branchID := req.BranchID
	if branchID == nil {
		branchID = actor.BranchID
	}
	if branchID == nil {
		return vehicle.VehicleResponse{}, vehicle.ErrBranchRequired
	}

	exists, err := s.branchRepo.Exists(ctx, *branchID)
	if err != nil {
		return vehicle.VehicleResponse{}, fmt.Errorf("failed to check branch: %w", err)
	}
	if !exists {
		return vehicle.VehicleResponse{}, branch.ErrBranchNotFound
	}

	created, err := s.vehicleRepo.Create(ctx, req.ToVehicle(*branchID))
	if err != nil {
		return vehicle.VehicleResponse{}, err
	}

	s.logger.InfoContext(ctx, "vehicle registered",
		slog.String("vehicle_id", created.ID),
		slog.String("vehicle_number", created.VehicleNumber),
		slog.String("branch_id", created.BranchID),
		slog.String("created_by", actor.ID),
	)
	return vehicle.ToResponse(created), nil
}

func (s *VehicleServiceImpl) Get(ctx context.Context, id string) (vehicle.VehicleResponse, error) {
	v, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return vehicle.VehicleResponse{}, err
	}
	return vehicle.ToResponse(v), nil
}

func (s *VehicleServiceImpl) ListByBranch(ctx context.Context, branchID string) ([]vehicle.VehicleResponse, error) {
	exists, err := s.branchRepo.Exists(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to check branch: %w", err)
	}
	if !exists {
		return nil, branch.ErrBranchNotFound
	}

	vehicles, err := s.vehicleRepo.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicle.ToResponses(vehicles), nil
}
