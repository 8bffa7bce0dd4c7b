package postgresql

import (
	"context"
	"fmt"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/driver"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/salary"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/scheme"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/database"
)

type salaryAssignmentRepositoryImpl struct {
	db *database.DB
}

func NewSalaryAssignmentRepository(db *database.DB) salary.AssignmentRepository {
	return &salaryAssignmentRepositoryImpl{db: db}
}

const assignmentColumns = `driver_id, scheme_name, branch_id, assigned_by, created_at, updated_at`

func scanAssignment(row rowScanner) (salary.Assignment, error) {
	var a salary.Assignment
	err := row.Scan(
		&a.DriverID,
		&a.SchemeName,
		&a.BranchID,
		&a.AssignedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// Upsert implements salary.AssignmentRepository.
func (r *salaryAssignmentRepositoryImpl) Upsert(ctx context.Context, a salary.Assignment) (salary.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_assignments (driver_id, scheme_name, branch_id, assigned_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (driver_id) DO UPDATE
		SET scheme_name = EXCLUDED.scheme_name,
			branch_id = EXCLUDED.branch_id,
			assigned_by = EXCLUDED.assigned_by,
			updated_at = NOW()
		RETURNING ` + assignmentColumns

	result, err := scanAssignment(q.QueryRow(ctx, query, a.DriverID, a.SchemeName, a.BranchID, a.AssignedBy))
	if err != nil {
		if isForeignKeyViolation(err) {
			if constraintName(err) == "salary_assignments_scheme_name_fkey" {
				return salary.Assignment{}, scheme.ErrSchemeNotFound
			}
			return salary.Assignment{}, driver.ErrDriverNotFound
		}
		return salary.Assignment{}, fmt.Errorf("failed to upsert salary assignment: %w", err)
	}

	return result, nil
}

// GetByDriverID implements salary.AssignmentRepository.
func (r *salaryAssignmentRepositoryImpl) GetByDriverID(ctx context.Context, driverID string) (salary.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + assignmentColumns + ` FROM salary_assignments WHERE driver_id = $1`

	result, err := scanAssignment(q.QueryRow(ctx, query, driverID))
	if err != nil {
		if isNoRows(err) {
			return salary.Assignment{}, salary.ErrAssignmentNotFound
		}
		return salary.Assignment{}, fmt.Errorf("failed to get salary assignment: %w", err)
	}

	return result, nil
}

// ListByBranch implements salary.AssignmentRepository.
func (r *salaryAssignmentRepositoryImpl) ListByBranch(ctx context.Context, branchID string) ([]salary.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + assignmentColumns + ` FROM salary_assignments WHERE branch_id = $1 ORDER BY updated_at DESC`

	rows, err := q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary assignments: %w", err)
	}
	defer rows.Close()

	assignments := []salary.Assignment{}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return assignments, nil
}
