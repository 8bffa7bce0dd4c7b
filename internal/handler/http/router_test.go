package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/branch"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/driver"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/user"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/vehicle"
	"github.com/fleetdesk/fleet-backend-go/internal/handler/http/response"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/jwt"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/logger"
	"github.com/fleetdesk/fleet-backend-go/internal/repository/memory"
	branchService "github.com/fleetdesk/fleet-backend-go/internal/service/branch"
	driverService "github.com/fleetdesk/fleet-backend-go/internal/service/driver"
	dutyService "github.com/fleetdesk/fleet-backend-go/internal/service/duty"
	salaryService "github.com/fleetdesk/fleet-backend-go/internal/service/salary"
	schemeService "github.com/fleetdesk/fleet-backend-go/internal/service/scheme"
	vehicleService "github.com/fleetdesk/fleet-backend-go/internal/service/vehicle"
	walletService "github.com/fleetdesk/fleet-backend-go/internal/service/wallet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret    = "test-secret-key-for-jwt"
	handlerTestAccessExp = "1h"
)

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Error   *response.ErrorDetail `json:"error"`
	Meta    *response.Meta        `json:"meta"`
}

type testServer struct {
	handler  http.Handler
	jwt      jwt.Service
	branchID  string
	otherID   string
	driverID  string
	vehicleID string

	admin   user.Actor
	manager user.Actor
	driver  user.Actor
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	log := logger.Discard()
	store := memory.NewStore()

	branchRepo := memory.NewBranchRepository(store)
	driverRepo := memory.NewDriverRepository(store)
	schemeRepo := memory.NewSchemeRepository(store)
	vehicleRepo := memory.NewVehicleRepository(store)

	home, err := branchRepo.Create(ctx, branch.Branch{Name: "Kochi", Location: "Kochi"})
	require.NoError(t, err)
	other, err := branchRepo.Create(ctx, branch.Branch{Name: "Madurai", Location: "Madurai"})
	require.NoError(t, err)
	d, err := driverRepo.Create(ctx, driver.Driver{Name: "Anil", Mobile: "9447012345", BranchID: &home.ID, Status: driver.StatusActive})
	require.NoError(t, err)
	v, err := vehicleRepo.Create(ctx, vehicle.Vehicle{VehicleNumber: "KL07CD4321", Model: "Innova", BranchID: home.ID})
	require.NoError(t, err)

	drivers := driverService.NewDriverService(driverRepo, branchRepo, log)
	jwtService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp)

	router := NewRouter(
		log,
		[]string{"http://localhost:3000"},
		jwtService,
		NewSchemeHandler(schemeService.NewSchemeService(schemeRepo, log)),
		NewSalaryHandler(salaryService.NewSalaryService(
			salaryService.NewCalculator(), schemeRepo, memory.NewSalaryAssignmentRepository(store), driverRepo, branchRepo, log,
		), drivers),
		NewDutyHandler(dutyService.NewDutyService(store, memory.NewDutySessionRepository(store), driverRepo, branchRepo, vehicleRepo, log), drivers),
		NewWalletHandler(walletService.NewWalletService(
			store, memory.NewWalletTransactionRepository(store), memory.NewWalletBalanceRepository(store), driverRepo, log,
		), drivers),
		NewDriverHandler(drivers),
		NewBranchHandler(branchService.NewBranchService(branchRepo)),
		NewVehicleHandler(vehicleService.NewVehicleService(vehicleRepo, branchRepo, log), drivers),
	)

	return &testServer{
		handler:   router,
		jwt:       jwtService,
		branchID:  home.ID,
		otherID:   other.ID,
		driverID:  d.ID,
		vehicleID: v.ID,
		admin:     user.Actor{ID: "admin-1", Role: user.RoleAdmin},
		manager:   user.Actor{ID: "manager-1", Role: user.RoleManager, BranchID: &home.ID},
		driver:    user.Actor{ID: d.ID, Role: user.RoleDriver, BranchID: &home.ID},
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, actor *user.Actor) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		token, _, err := s.jwt.GenerateAccessToken(*actor)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func dailySchemeBody() map[string]interface{} {
	return map[string]interface{}{
		"name":                    "Daily Salary",
		"frequency":               "daily",
		"target":                  4500,
		"incentive_below_pct":     30,
		"incentive_above_pct":     60,
		"operator_commission_pct": 10,
		"cng_allowance_pct":       30,
		"extra_rule":              "pickups_300",
	}
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/schemes", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeEnvelope(t, rec, nil)
	assert.False(t, env.Success)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
}

func TestRouter_SchemeManagementIsAdminOnly(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/schemes", dailySchemeBody(), &s.manager)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/schemes", dailySchemeBody(), &s.admin)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/schemes", dailySchemeBody(), &s.admin)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/schemes", nil, &s.driver)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec, nil)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.TotalItems)
}

func TestRouter_SchemeValidationIs422(t *testing.T) {
	s := newTestServer(t)
	body := dailySchemeBody()
	body["frequency"] = "hourly"

	rec := s.do(t, http.MethodPost, "/api/v1/schemes", body, &s.admin)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decodeEnvelope(t, rec, nil)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "frequency")
}

func TestRouter_CalculateDailyPayslip(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/v1/schemes", dailySchemeBody(), &s.admin).Code)

	rec := s.do(t, http.MethodPost, "/api/v1/salary/calculate", map[string]interface{}{
		"scheme_name":     "Daily Salary",
		"total_earnings":  5000,
		"commission_base": 500,
		"cng_spend":       200,
		"pickup_count":    16,
	}, &s.manager)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result struct {
		FinalSalary decimal.Decimal `json:"final_salary"`
		Bonus       decimal.Decimal `json:"bonus"`
	}
	decodeEnvelope(t, rec, &result)
	assert.True(t, result.FinalSalary.Equal(decimal.NewFromInt(6960)))
	assert.True(t, result.Bonus.Equal(decimal.NewFromInt(300)))
}

func TestRouter_DutyLifecycle(t *testing.T) {
	s := newTestServer(t)
	start := map[string]interface{}{
		"vehicle_id":     s.vehicleID,
		"branch_id":      s.branchID,
		"start_odometer": 5000,
		"start_fuel":     20,
	}

	// Arrange: driver starts their own duty
	rec := s.do(t, http.MethodPost, "/api/v1/duty/start", start, &s.driver)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var session struct {
		ID       string `json:"id"`
		DriverID string `json:"driver_id"`
		Status   string `json:"status"`
	}
	decodeEnvelope(t, rec, &session)
	assert.Equal(t, s.driverID, session.DriverID)

	// Second start conflicts
	rec = s.do(t, http.MethodPost, "/api/v1/duty/start", start, &s.driver)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Another driver cannot see the session
	stranger := user.Actor{ID: "someone-else", Role: user.RoleDriver, BranchID: &s.branchID}
	rec = s.do(t, http.MethodGet, "/api/v1/duty/"+session.ID, nil, &stranger)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Odometer going backwards is rejected
	rec = s.do(t, http.MethodPut, "/api/v1/duty/"+session.ID+"/end", map[string]interface{}{"end_odometer": 4999, "end_fuel": 10}, &s.driver)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/duty/"+session.ID+"/end", map[string]interface{}{"end_odometer": 5120, "end_fuel": 12}, &s.driver)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPut, "/api/v1/duty/"+session.ID+"/end", map[string]interface{}{"end_odometer": 5120, "end_fuel": 12}, &s.driver)
	assert.Equal(t, http.StatusConflict, rec.Code)
	env := decodeEnvelope(t, rec, nil)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/drivers/"+s.driverID+"/duty/active", nil, &s.driver)
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec, nil)
	assert.Empty(t, env.Data)

	rec = s.do(t, http.MethodGet, "/api/v1/branches/"+s.branchID+"/duty/completed", nil, &s.manager)
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec, nil)
	assert.Equal(t, 1, env.Meta.TotalItems)

	rec = s.do(t, http.MethodGet, "/api/v1/branches/"+s.branchID+"/duty/completed/export", nil, &s.manager)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "trip_sheets_"+s.branchID)
	assert.NotZero(t, rec.Body.Len())
}

func TestRouter_WalletApprovalWorkflow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/wallet/transactions", map[string]interface{}{
		"driver_id": s.driverID,
		"amount":    "250.50",
		"reason":    "airport run incentive",
	}, &s.manager)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var tx struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decodeEnvelope(t, rec, &tx)
	assert.Equal(t, "pending", tx.Status)

	// Drivers cannot propose
	rec = s.do(t, http.MethodPost, "/api/v1/wallet/transactions", map[string]interface{}{"driver_id": s.driverID, "amount": 10}, &s.driver)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Managers cannot approve
	rec = s.do(t, http.MethodPut, "/api/v1/wallet/transactions/"+tx.ID+"/approve", nil, &s.manager)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/wallet/transactions/"+tx.ID+"/maybe", nil, &s.admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/wallet/transactions/"+tx.ID+"/approve", nil, &s.admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/wallet/transactions/"+tx.ID, nil, &s.driver)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeEnvelope(t, rec, &tx)
	assert.Equal(t, "approved", tx.Status)

	rec = s.do(t, http.MethodPut, "/api/v1/wallet/transactions/"+tx.ID+"/reject", nil, &s.admin)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/drivers/"+s.driverID+"/wallet", nil, &s.driver)
	require.Equal(t, http.StatusOK, rec.Code)
	var stmt struct {
		NetBalance   decimal.Decimal   `json:"net_balance"`
		Transactions []json.RawMessage `json:"transactions"`
	}
	decodeEnvelope(t, rec, &stmt)
	assert.True(t, stmt.NetBalance.Equal(decimal.RequireFromString("250.50")))
	assert.Len(t, stmt.Transactions, 1)

	rec = s.do(t, http.MethodGet, "/api/v1/wallet/approved?group_by=kind", nil, &s.manager)
	require.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Groups map[string]struct {
			Total decimal.Decimal `json:"total"`
		} `json:"groups"`
	}
	decodeEnvelope(t, rec, &listing)
	assert.True(t, listing.Groups["reward"].Total.Equal(decimal.RequireFromString("250.50")))

	rec = s.do(t, http.MethodPost, "/api/v1/drivers/"+s.driverID+"/wallet/recompute", nil, &s.admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var recompute struct {
		Drifted bool `json:"drifted"`
	}
	decodeEnvelope(t, rec, &recompute)
	assert.False(t, recompute.Drifted)
}

func TestRouter_BranchScoping(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/branches/"+s.branchID+"/drivers", nil, &s.manager)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/branches/"+s.otherID+"/drivers", nil, &s.manager)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/wallet/pending?branch_id="+s.otherID, nil, &s.manager)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	outsider := user.Actor{ID: "manager-2", Role: user.RoleManager, BranchID: &s.otherID}
	rec = s.do(t, http.MethodGet, "/api/v1/drivers/"+s.driverID+"/wallet", nil, &outsider)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/branches/"+s.otherID+"/drivers", nil, &s.admin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_DriverOnboarding(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/drivers", map[string]interface{}{"name": "Joseph", "mobile": "9847098470"}, &s.manager)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID       string  `json:"id"`
		Status   string  `json:"status"`
		BranchID *string `json:"branch_id"`
	}
	decodeEnvelope(t, rec, &created)
	assert.Equal(t, "waiting", created.Status)
	require.NotNil(t, created.BranchID)
	assert.Equal(t, s.branchID, *created.BranchID)

	// Waiting drivers cannot start duty
	waiting := user.Actor{ID: created.ID, Role: user.RoleDriver, BranchID: &s.branchID}
	rec = s.do(t, http.MethodPost, "/api/v1/duty/start", map[string]interface{}{
		"vehicle_id": s.vehicleID, "branch_id": s.branchID, "start_odometer": 1, "start_fuel": 1,
	}, &waiting)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/drivers/"+created.ID+"/approve", nil, &s.manager)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/drivers/"+created.ID+"/approve", nil, &s.admin)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/drivers/"+created.ID+"/reject", nil, &s.admin)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_VehicleRegistry(t *testing.T) {
	s := newTestServer(t)
	body := map[string]interface{}{
		"vehicle_number":   "kl 07 ef 1111",
		"brand":            "Toyota",
		"model":            "Etios",
		"fuel_type":        "diesel",
		"insurance_expiry": "2027-06-30",
	}

	// Drivers cannot register vehicles
	rec := s.do(t, http.MethodPost, "/api/v1/vehicles", body, &s.driver)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/vehicles", body, &s.manager)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID              string `json:"id"`
		VehicleNumber   string `json:"vehicle_number"`
		BranchID        string `json:"branch_id"`
		InsuranceExpiry string `json:"insurance_expiry"`
	}
	decodeEnvelope(t, rec, &created)
	assert.Equal(t, "KL07EF1111", created.VehicleNumber)
	assert.Equal(t, s.branchID, created.BranchID)
	assert.Equal(t, "2027-06-30", created.InsuranceExpiry)

	rec = s.do(t, http.MethodPost, "/api/v1/vehicles", body, &s.manager)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Managers are pinned to their branch
	body["vehicle_number"] = "TN58XY0001"
	body["branch_id"] = s.otherID
	rec = s.do(t, http.MethodPost, "/api/v1/vehicles", body, &s.manager)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/v1/vehicles", body, &s.admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var foreign struct {
		ID string `json:"id"`
	}
	decodeEnvelope(t, rec, &foreign)

	rec = s.do(t, http.MethodGet, "/api/v1/branches/"+s.branchID+"/vehicles", nil, &s.driver)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec, nil)
	assert.Equal(t, 2, env.Meta.TotalItems)

	rec = s.do(t, http.MethodGet, "/api/v1/branches/"+s.otherID+"/vehicles", nil, &s.manager)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/vehicles/"+foreign.ID, nil, &s.manager)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// A vehicle of another branch cannot be taken on duty here
	rec = s.do(t, http.MethodPost, "/api/v1/duty/start", map[string]interface{}{
		"vehicle_id": foreign.ID, "branch_id": s.branchID, "start_odometer": 100, "start_fuel": 10,
	}, &s.driver)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/duty/start", map[string]interface{}{
		"vehicle_id": "unregistered", "branch_id": s.branchID, "start_odometer": 100, "start_fuel": 10,
	}, &s.driver)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
