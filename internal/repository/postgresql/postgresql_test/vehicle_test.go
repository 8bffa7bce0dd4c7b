package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/branch"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/vehicle"
	"github.com/fleetdesk/fleet-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	b, _ := seedDriver(t, db, "9000000101")
	repo := postgresql.NewVehicleRepository(db)
	expiry := time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC)

	second, err := repo.Create(ctx, vehicle.Vehicle{VehicleNumber: "KL07ZZ9999", Model: "Ertiga", BranchID: b.ID})
	require.NoError(t, err)
	first, err := repo.Create(ctx, vehicle.Vehicle{
		VehicleNumber:   "KL07AA0001",
		Brand:           "Maruti",
		Model:           "Dzire",
		FuelType:        vehicle.FuelCNG,
		BranchID:        b.ID,
		InsuranceExpiry: &expiry,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, vehicle.FuelCNG, got.FuelType)
	require.NotNil(t, got.InsuranceExpiry)
	assert.True(t, expiry.Equal(*got.InsuranceExpiry))
	assert.Nil(t, got.PermitExpiry)

	list, err := repo.ListByBranch(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestVehicleRepository_Create_Rejections(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	b, _ := seedDriver(t, db, "9000000102")
	repo := postgresql.NewVehicleRepository(db)

	_, err := repo.Create(ctx, vehicle.Vehicle{VehicleNumber: "KL07AA0001", Model: "Dzire", BranchID: b.ID})
	require.NoError(t, err)

	_, err = repo.Create(ctx, vehicle.Vehicle{VehicleNumber: "KL07AA0001", Model: "Etios", BranchID: b.ID})
	assert.ErrorIs(t, err, vehicle.ErrVehicleNumberExists)

	_, err = repo.Create(ctx, vehicle.Vehicle{VehicleNumber: "KL07AA0002", Model: "Etios", BranchID: uuid.NewString()})
	assert.ErrorIs(t, err, branch.ErrBranchNotFound)
}

func TestVehicleRepository_GetByID_Missing(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewVehicleRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, vehicle.ErrVehicleNotFound)

	_, err = repo.GetByID(context.Background(), "TN-09-AB-1234")
	assert.ErrorIs(t, err, vehicle.ErrVehicleNotFound)
}
