package scheme

import (
	"context"
	"errors"
	"testing"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/scheme"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/apperror"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/logger"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/validator"
	"github.com/fleetdesk/fleet-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() scheme.SchemeService {
	return NewSchemeService(memory.NewSchemeRepository(memory.NewStore()), logger.Discard())
}

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func str(s string) *string { return &s }

func dailyRequest() scheme.SchemeRequest {
	return scheme.SchemeRequest{
		Name:              "Daily Salary",
		Frequency:         scheme.FrequencyDaily,
		Target:            dec(4500),
		IncentiveBelowPct: dec(30),
		IncentiveAbovePct: dec(60),
		ExtraRule:         str("daily_15_pickups_300"),
	}
}

func TestSchemeService_Create_Success(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	// Act
	created, err := svc.Create(ctx, dailyRequest())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Daily Salary", created.Name)
	assert.Equal(t, scheme.FrequencyDaily, created.Frequency)
	assert.True(t, created.Target.Equal(decimal.NewFromInt(4500)))
	assert.Nil(t, created.OperatorCommissionPct)

	got, err := svc.Get(ctx, "Daily Salary")
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
}

func TestSchemeService_Create_DuplicateName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	_, err := svc.Create(ctx, dailyRequest())
	require.NoError(t, err)

	_, err = svc.Create(ctx, dailyRequest())

	assert.ErrorIs(t, err, scheme.ErrSchemeNameExists)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestSchemeService_Create_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *scheme.SchemeRequest)
		field  string
	}{
		{"blank name", func(r *scheme.SchemeRequest) { r.Name = "  " }, "name"},
		{"unknown frequency", func(r *scheme.SchemeRequest) { r.Frequency = "hourly" }, "frequency"},
		{"negative target", func(r *scheme.SchemeRequest) { r.Target = dec(-1) }, "target"},
		{"percentage over 100", func(r *scheme.SchemeRequest) { r.IncentiveAbovePct = dec(101) }, "incentive_above_pct"},
		{"unparseable rule", func(r *scheme.SchemeRequest) { r.ExtraRule = str("bonus_lots") }, "extra_rule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService()
			req := dailyRequest()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), req)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
}

func TestSchemeService_Get_NotFound(t *testing.T) {
	_, err := newTestService().Get(context.Background(), "Missing")

	assert.ErrorIs(t, err, scheme.ErrSchemeNotFound)
}

func TestSchemeService_Replace_Success(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	_, err := svc.Create(ctx, dailyRequest())
	require.NoError(t, err)

	req := dailyRequest()
	req.Name = ""
	req.Target = dec(5000)
	req.ExtraRule = str("")

	replaced, err := svc.Replace(ctx, "Daily Salary", req)

	require.NoError(t, err)
	assert.Equal(t, "Daily Salary", replaced.Name)
	assert.True(t, replaced.Target.Equal(decimal.NewFromInt(5000)))
	assert.Nil(t, replaced.ExtraRule)
}

func TestSchemeService_Replace_RenameRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	_, err := svc.Create(ctx, dailyRequest())
	require.NoError(t, err)

	req := dailyRequest()
	req.Name = "Daily Salary v2"

	_, err = svc.Replace(ctx, "Daily Salary", req)

	assert.ErrorIs(t, err, scheme.ErrSchemeRenamed)
}

func TestSchemeService_Replace_NotFound(t *testing.T) {
	req := dailyRequest()

	_, err := newTestService().Replace(context.Background(), "Daily Salary", req)

	assert.ErrorIs(t, err, scheme.ErrSchemeNotFound)
}

func TestSchemeService_List_SortedByName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	for _, name := range []string{"Weekly Salary", "12H Shift", "Daily Salary"} {
		req := dailyRequest()
		req.Name = name
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	schemes, err := svc.List(ctx)

	require.NoError(t, err)
	require.Len(t, schemes, 3)
	assert.Equal(t, "12H Shift", schemes[0].Name)
	assert.Equal(t, "Daily Salary", schemes[1].Name)
	assert.Equal(t, "Weekly Salary", schemes[2].Name)
}
