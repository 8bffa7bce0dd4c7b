package duty

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/branch"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/driver"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/duty"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/vehicle"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/database"
)

type DutyServiceImpl struct {
	tx          database.Transactor
	sessionRepo duty.SessionRepository
	driverRepo  driver.DriverRepository
	branchRepo  branch.BranchRepository
	vehicleRepo vehicle.VehicleRepository
	logger      *slog.Logger
	now         func() time.Time
}

func NewDutyService(
	tx database.Transactor,
	sessionRepo duty.SessionRepository,
	driverRepo driver.DriverRepository,
	branchRepo branch.BranchRepository,
	vehicleRepo vehicle.VehicleRepository,
	logger *slog.Logger,
) duty.DutyService {
	return &DutyServiceImpl{
		tx:          tx,
		sessionRepo: sessionRepo,
		driverRepo:  driverRepo,
		branchRepo:  branchRepo,
		vehicleRepo: vehicleRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// StartDuty implements duty.DutyService.
func (s *DutyServiceImpl) StartDuty(ctx context.Context, req duty.StartDutyRequest) (duty.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return duty.SessionResponse{}, err
	}

	d, err := s.driverRepo.FindByID(ctx, req.DriverID)
	if err != nil {
		return duty.SessionResponse{}, err
	}
	if !d.CanStartDuty() {
		return duty.SessionResponse{}, driver.ErrDriverNotActive
	}

	exists, err := s.branchRepo.Exists(ctx, req.BranchID)
	if err != nil {
		return duty.SessionResponse{}, fmt.Errorf("failed to check branch: %w", err)
	}
	if !exists {
		return duty.SessionResponse{}, branch.ErrBranchNotFound
	}

	v, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return duty.SessionResponse{}, err
	}
	if !v.BelongsTo(req.BranchID) {
		return duty.SessionResponse{}, vehicle.ErrVehicleBranchMismatch
	}

	startTime := s.now()
	if req.StartTime != nil {
		startTime, err = time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return duty.SessionResponse{}, fmt.Errorf("failed to parse start time: %w", err)
		}
	}

	var session duty.Session
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err := s.sessionRepo.CreateActive(ctx, duty.Session{
			DriverID:      d.ID,
			VehicleID:     v.ID,
			BranchID:      req.BranchID,
			StartOdometer: *req.StartOdometer,
			StartFuel:     *req.StartFuel,
			StartTime:     startTime,
		})
		if err != nil {
			return err
		}
		if err := s.driverRepo.SetDutyStatus(ctx, d.ID, true); err != nil {
			return fmt.Errorf("failed to mark driver on duty: %w", err)
		}
		session = created
		return nil
	})
	if err != nil {
		return duty.SessionResponse{}, err
	}

	s.logger.InfoContext(ctx, "duty started",
		slog.String("session_id", session.ID),
		slog.String("driver_id", session.DriverID),
		slog.String("vehicle_id", session.VehicleID),
		slog.String("vehicle_number", v.VehicleNumber),
		slog.String("branch_id", session.BranchID),
	)
	return duty.ToResponse(session), nil
}

// EndDuty implements duty.DutyService.
func (s *DutyServiceImpl) EndDuty(ctx context.Context, req duty.EndDutyRequest) (duty.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return duty.SessionResponse{}, err
	}

	endTime := s.now()
	if req.EndTime != nil {
		var err error
		endTime, err = time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return duty.SessionResponse{}, fmt.Errorf("failed to parse end time: %w", err)
		}
	}

	var session duty.Session
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.sessionRepo.GetByID(ctx, req.SessionID)
		if err != nil {
			return err
		}

		closing, err := current.Close(*req.EndOdometer, *req.EndFuel, endTime)
		if err != nil {
			return err
		}

		completed, err := s.sessionRepo.Complete(ctx, current.ID, closing)
		if err != nil {
			return err
		}
		if err := s.driverRepo.SetDutyStatus(ctx, completed.DriverID, false); err != nil {
			return fmt.Errorf("failed to mark driver off duty: %w", err)
		}
		session = completed
		return nil
	})
	if err != nil {
		return duty.SessionResponse{}, err
	}

	s.logger.InfoContext(ctx, "duty ended",
		slog.String("session_id", session.ID),
		slog.String("driver_id", session.DriverID),
		slog.String("distance", session.Distance.String()),
	)
	return duty.ToResponse(session), nil
}

// GetActive implements duty.DutyService.
func (s *DutyServiceImpl) GetActive(ctx context.Context, driverID string) (*duty.SessionResponse, error) {
	if _, err := s.driverRepo.FindByID(ctx, driverID); err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.GetActiveByDriver(ctx, driverID)
	if err != nil {
		if errors.Is(err, duty.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}

	resp := duty.ToResponse(session)
	return &resp, nil
}

// Get implements duty.DutyService.
func (s *DutyServiceImpl) Get(ctx context.Context, id string) (duty.SessionResponse, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return duty.SessionResponse{}, err
	}
	return duty.ToResponse(session), nil
}

// ListCompleted implements duty.DutyService.
func (s *DutyServiceImpl) ListCompleted(ctx context.Context, branchID string) ([]duty.SessionResponse, error) {
	sessions, err := s.completedSessions(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return duty.ToResponses(sessions), nil
}

// ExportCompleted implements duty.DutyService.
func (s *DutyServiceImpl) ExportCompleted(ctx context.Context, branchID string) (*bytes.Buffer, string, error) {
	b, err := s.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return nil, "", err
	}

	sessions, err := s.sessionRepo.ListCompletedByBranch(ctx, branchID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list completed sessions: %w", err)
	}

	buf, err := writeTripSheets(b.Name, sessions)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to build trip sheet export",
			slog.String("branch_id", branchID),
			slog.String("error", err.Error()),
		)
		return nil, "", err
	}

	filename := fmt.Sprintf("trip_sheets_%s_%s.xlsx", b.ID, s.now().Format("2006-01-02"))
	return buf, filename, nil
}

func (s *DutyServiceImpl) completedSessions(ctx context.Context, branchID string) ([]duty.Session, error) {
	exists, err := s.branchRepo.Exists(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to check branch: %w", err)
	}
	if !exists {
		return nil, branch.ErrBranchNotFound
	}

	sessions, err := s.sessionRepo.ListCompletedByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed sessions: %w", err)
	}
	return sessions, nil
}
