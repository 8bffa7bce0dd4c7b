package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/duty"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type dutySessionRepositoryImpl struct {
	db *database.DB
}

func NewDutySessionRepository(db *database.DB) duty.SessionRepository {
	return &dutySessionRepositoryImpl{db: db}
}

const sessionColumns = `id, driver_id, vehicle_id, branch_id, status, start_odometer, end_odometer,
	start_fuel, end_fuel, distance, fuel_consumed, start_time, end_time, created_at, updated_at`

func scanSession(row rowScanner) (duty.Session, error) {
	var (
		s                                         duty.Session
		endOdometer, endFuel, distance, fuelSpent decimal.NullDecimal
	)
	err := row.Scan(
		&s.ID,
		&s.DriverID,
		&s.VehicleID,
		&s.BranchID,
		&s.Status,
		&s.StartOdometer,
		&endOdometer,
		&s.StartFuel,
		&endFuel,
		&distance,
		&fuelSpent,
		&s.StartTime,
		&s.EndTime,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return duty.Session{}, err
	}
	s.EndOdometer = fromNullDecimal(endOdometer)
	s.EndFuel = fromNullDecimal(endFuel)
	s.Distance = fromNullDecimal(distance)
	s.FuelConsumed = fromNullDecimal(fuelSpent)
	return s, nil
}

// CreateActive implements duty.SessionRepository. The partial unique index on
// active sessions makes the insert a no-op when the driver is already on duty.
func (r *dutySessionRepositoryImpl) CreateActive(ctx context.Context, s duty.Session) (duty.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO duty_sessions (id, driver_id, vehicle_id, branch_id, status, start_odometer, start_fuel,
			start_time, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, 'active', $4, $5, $6, NOW(), NOW())
		ON CONFLICT (driver_id) WHERE status = 'active' DO NOTHING
		RETURNING ` + sessionColumns

	result, err := scanSession(q.QueryRow(ctx, query,
		s.DriverID,
		s.VehicleID,
		s.BranchID,
		s.StartOdometer,
		s.StartFuel,
		s.StartTime,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return duty.Session{}, duty.ErrActiveSessionExists
		}
		return duty.Session{}, fmt.Errorf("failed to create duty session: %w", err)
	}

	return result, nil
}

// GetByID implements duty.SessionRepository.
func (r *dutySessionRepositoryImpl) GetByID(ctx context.Context, id string) (duty.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + ` FROM duty_sessions WHERE id = $1`

	result, err := scanSession(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return duty.Session{}, duty.ErrSessionNotFound
		}
		return duty.Session{}, fmt.Errorf("failed to get duty session: %w", err)
	}

	return result, nil
}

// GetActiveByDriver implements duty.SessionRepository.
func (r *dutySessionRepositoryImpl) GetActiveByDriver(ctx context.Context, driverID string) (duty.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + ` FROM duty_sessions WHERE driver_id = $1 AND status = 'active'`

	result, err := scanSession(q.QueryRow(ctx, query, driverID))
	if err != nil {
		if isNoRows(err) {
			return duty.Session{}, duty.ErrSessionNotFound
		}
		return duty.Session{}, fmt.Errorf("failed to get active duty session: %w", err)
	}

	return result, nil
}

// Complete implements duty.SessionRepository.
func (r *dutySessionRepositoryImpl) Complete(ctx context.Context, id string, c duty.Closing) (duty.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE duty_sessions
		SET status = 'completed',
			end_odometer = $2,
			end_fuel = $3,
			distance = $4,
			fuel_consumed = $5,
			end_time = $6,
			updated_at = $6
		WHERE id = $1 AND status = 'active'
		RETURNING ` + sessionColumns

	result, err := scanSession(q.QueryRow(ctx, query, id, c.EndOdometer, c.EndFuel, c.Distance, c.FuelConsumed, c.EndTime))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, findErr := r.GetByID(ctx, id); findErr != nil {
				return duty.Session{}, findErr
			}
			return duty.Session{}, duty.ErrSessionAlreadyCompleted
		}
		if isNoRows(err) {
			return duty.Session{}, duty.ErrSessionNotFound
		}
		return duty.Session{}, fmt.Errorf("failed to complete duty session: %w", err)
	}

	return result, nil
}

// ListCompletedByBranch implements duty.SessionRepository.
func (r *dutySessionRepositoryImpl) ListCompletedByBranch(ctx context.Context, branchID string) ([]duty.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM duty_sessions
		WHERE branch_id = $1 AND status = 'completed'
		ORDER BY end_time DESC, id DESC`

	rows, err := q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed duty sessions: %w", err)
	}
	defer rows.Close()

	sessions := []duty.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan duty session: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return sessions, nil
}
