package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/driver"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type driverRepositoryImpl struct {
	db *database.DB
}

func NewDriverRepository(db *database.DB) driver.DriverRepository {
	return &driverRepositoryImpl{db: db}
}

const driverColumns = `id, name, mobile, branch_id, manager_id, status, on_duty, approved_by, approved_at, created_at, updated_at`

func scanDriver(row rowScanner) (driver.Driver, error) {
	var d driver.Driver
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Mobile,
		&d.BranchID,
		&d.ManagerID,
		&d.Status,
		&d.OnDuty,
		&d.ApprovedBy,
		&d.ApprovedAt,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

// Create implements driver.DriverRepository.
func (r *driverRepositoryImpl) Create(ctx context.Context, d driver.Driver) (driver.Driver, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO drivers (id, name, mobile, branch_id, manager_id, status, on_duty, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, FALSE, NOW(), NOW())
		RETURNING ` + driverColumns

	result, err := scanDriver(q.QueryRow(ctx, query, d.Name, d.Mobile, d.BranchID, d.ManagerID, d.Status))
	if err != nil {
		if isUniqueViolation(err) {
			return driver.Driver{}, driver.ErrMobileExists
		}
		return driver.Driver{}, fmt.Errorf("failed to create driver: %w", err)
	}

	return result, nil
}

// FindByID implements driver.DriverRepository.
func (r *driverRepositoryImpl) FindByID(ctx context.Context, id string) (driver.Driver, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`

	result, err := scanDriver(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return driver.Driver{}, driver.ErrDriverNotFound
		}
		return driver.Driver{}, fmt.Errorf("failed to get driver: %w", err)
	}

	return result, nil
}

// ListByBranch implements driver.DriverRepository.
func (r *driverRepositoryImpl) ListByBranch(ctx context.Context, branchID string, filter driver.ListDriversFilter) ([]driver.Driver, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + driverColumns + ` FROM drivers WHERE branch_id = $1`
	args := []interface{}{branchID}
	if filter.Status != nil {
		query += ` AND status = $2`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	defer rows.Close()

	drivers := []driver.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		drivers = append(drivers, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return drivers, nil
}

// SetDutyStatus implements driver.DriverRepository.
func (r *driverRepositoryImpl) SetDutyStatus(ctx context.Context, id string, onDuty bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE drivers SET on_duty = $2, updated_at = NOW() WHERE id = $1`, id, onDuty)
	if err != nil {
		if isNoRows(err) {
			return driver.ErrDriverNotFound
		}
		return fmt.Errorf("failed to set driver duty status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return driver.ErrDriverNotFound
	}

	return nil
}

// Resolve implements driver.DriverRepository.
func (r *driverRepositoryImpl) Resolve(ctx context.Context, id string, status driver.Status, resolvedBy string, resolvedAt time.Time) (driver.Driver, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE drivers
		SET status = $2, approved_by = $3, approved_at = $4, updated_at = $4
		WHERE id = $1 AND status = 'waiting'
		RETURNING ` + driverColumns

	result, err := scanDriver(q.QueryRow(ctx, query, id, status, resolvedBy, resolvedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either missing or already processed.
			if _, findErr := r.FindByID(ctx, id); findErr != nil {
				return driver.Driver{}, findErr
			}
			return driver.Driver{}, driver.ErrDriverAlreadyProcessed
		}
		if isNoRows(err) {
			return driver.Driver{}, driver.ErrDriverNotFound
		}
		return driver.Driver{}, fmt.Errorf("failed to resolve driver: %w", err)
	}

	return result, nil
}
