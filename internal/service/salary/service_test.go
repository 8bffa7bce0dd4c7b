package salary

import (
	"context"
	"testing"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/branch"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/driver"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/salary"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/scheme"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/user"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/apperror"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/logger"
	"github.com/fleetdesk/fleet-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type salaryFixture struct {
	svc      salary.SalaryService
	branchID string
	driverID string
}

func newSalaryFixture(t *testing.T) salaryFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	branchRepo := memory.NewBranchRepository(store)
	driverRepo := memory.NewDriverRepository(store)
	schemeRepo := memory.NewSchemeRepository(store)

	b, err := branchRepo.Create(ctx, branch.Branch{Name: "Pune East", Location: "Pune"})
	require.NoError(t, err)
	dr, err := driverRepo.Create(ctx, driver.Driver{
		Name:     "Ravi Kumar",
		Mobile:   "9876543210",
		BranchID: &b.ID,
		Status:   driver.StatusActive,
	})
	require.NoError(t, err)
	_, err = schemeRepo.Create(ctx, *dailyScheme())
	require.NoError(t, err)
	_, err = schemeRepo.Create(ctx, scheme.Scheme{Name: "Weekly Salary", Frequency: scheme.FrequencyWeekly, Target: dp("21000")})
	require.NoError(t, err)

	svc := NewSalaryService(
		NewCalculator(),
		schemeRepo,
		memory.NewSalaryAssignmentRepository(store),
		driverRepo,
		branchRepo,
		logger.Discard(),
	)
	return salaryFixture{svc: svc, branchID: b.ID, driverID: dr.ID}
}

func intPtr(v int) *int { return &v }

func TestSalaryService_Calculate_BySchemeName(t *testing.T) {
	f := newSalaryFixture(t)

	// Act
	resp, err := f.svc.Calculate(context.Background(), salary.CalculateRequest{
		SchemeName:     rule("Daily Salary"),
		TotalEarnings:  dp("5000"),
		CommissionBase: dp("500"),
		CNGSpend:       dp("200"),
		PickupCount:    intPtr(16),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Daily Salary", resp.SchemeName)
	assertDecimal(t, "6960", resp.FinalSalary)
}

func TestSalaryService_Calculate_MissingFiguresAreZero(t *testing.T) {
	f := newSalaryFixture(t)

	resp, err := f.svc.Calculate(context.Background(), salary.CalculateRequest{SchemeName: rule("Daily Salary")})

	require.NoError(t, err)
	assert.True(t, resp.FinalSalary.IsZero())
	assertDecimal(t, "4500", resp.Breakdown.Target)
}

func TestSalaryService_Calculate_ByDriverAssignment(t *testing.T) {
	ctx := context.Background()
	f := newSalaryFixture(t)
	admin := user.Actor{ID: "admin-1", Role: user.RoleAdmin}

	_, err := f.svc.Assign(ctx, salary.AssignRequest{DriverID: f.driverID, SchemeName: "Daily Salary"}, admin)
	require.NoError(t, err)

	resp, err := f.svc.Calculate(ctx, salary.CalculateRequest{
		DriverID:      &f.driverID,
		TotalEarnings: dp("4000"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Daily Salary", resp.SchemeName)
	assert.Equal(t, &f.driverID, resp.DriverID)
	assertDecimal(t, "1200", resp.Incentive)
}

func TestSalaryService_Calculate_Errors(t *testing.T) {
	f := newSalaryFixture(t)
	missing := "019a0000-0000-7000-8000-000000000000"

	tests := []struct {
		name    string
		req     salary.CalculateRequest
		wantErr error
	}{
		{"neither scheme nor driver", salary.CalculateRequest{}, apperror.ErrValidation},
		{"both scheme and driver", salary.CalculateRequest{SchemeName: rule("Daily Salary"), DriverID: &f.driverID}, apperror.ErrValidation},
		{"negative earnings", salary.CalculateRequest{SchemeName: rule("Daily Salary"), TotalEarnings: dp("-1")}, apperror.ErrValidation},
		{"negative pickups", salary.CalculateRequest{SchemeName: rule("Daily Salary"), PickupCount: intPtr(-2)}, apperror.ErrValidation},
		{"unknown scheme", salary.CalculateRequest{SchemeName: rule("Hourly")}, scheme.ErrSchemeNotFound},
		{"unknown driver", salary.CalculateRequest{DriverID: &missing}, driver.ErrDriverNotFound},
		{"driver without assignment", salary.CalculateRequest{DriverID: &f.driverID}, salary.ErrAssignmentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Calculate(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSalaryService_Assign_ReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	f := newSalaryFixture(t)
	manager := user.Actor{ID: "manager-1", Role: user.RoleManager, BranchID: &f.branchID}

	_, err := f.svc.Assign(ctx, salary.AssignRequest{DriverID: f.driverID, SchemeName: "Daily Salary"}, manager)
	require.NoError(t, err)

	_, err = f.svc.Assign(ctx, salary.AssignRequest{DriverID: f.driverID, SchemeName: "Weekly Salary"}, manager)
	require.NoError(t, err)

	_, err = f.svc.Assign(ctx, salary.AssignRequest{DriverID: f.driverID, SchemeName: "Monthly Salary"}, manager)
	assert.ErrorIs(t, err, scheme.ErrSchemeNotFound)

	got, err := f.svc.GetAssignment(ctx, f.driverID)
	require.NoError(t, err)
	assert.Equal(t, "Weekly Salary", got.SchemeName)
	assert.Equal(t, "manager-1", got.AssignedBy)
	assert.Equal(t, &f.branchID, got.BranchID)

	list, err := f.svc.ListAssignments(ctx, f.branchID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSalaryService_ListAssignments_UnknownBranch(t *testing.T) {
	f := newSalaryFixture(t)

	_, err := f.svc.ListAssignments(context.Background(), "no-such-branch")

	assert.ErrorIs(t, err, branch.ErrBranchNotFound)
}
