package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/wallet"
	"github.com/fleetdesk/fleet-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletTransactionRepository_Resolve_OnlyFromPending(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	b, d := seedDriver(t, db, "9000000011")
	repo := postgresql.NewWalletTransactionRepository(db)

	created, err := repo.Create(ctx, wallet.Transaction{
		DriverID:   d.ID,
		BranchID:   &b.ID,
		Kind:       wallet.KindReward,
		Direction:  wallet.DirectionAdd,
		Amount:     decimal.NewFromInt(500),
		Reason:     "festival bonus",
		ProposedBy: "manager-1",
	})
	require.NoError(t, err)
	assert.Equal(t, wallet.StatusPending, created.Status)

	resolved, err := repo.Resolve(ctx, created.ID, wallet.StatusApproved, "admin-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, wallet.StatusApproved, resolved.Status)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, "admin-1", *resolved.ResolvedBy)

	_, err = repo.Resolve(ctx, created.ID, wallet.StatusRejected, "admin-2", time.Now())
	assert.ErrorIs(t, err, wallet.ErrTransactionNotPending)

	totals, err := repo.ApprovedTotals(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, totals.TotalAdd.Equal(decimal.NewFromInt(500)))
	assert.True(t, totals.TotalSubtract.IsZero())
}

func TestWalletRepositories_RollbackKeepsPending(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	_, d := seedDriver(t, db, "9000000012")
	txRepo := postgresql.NewWalletTransactionRepository(db)
	balanceRepo := postgresql.NewWalletBalanceRepository(db)
	transactor := postgresql.NewTransactor(db)

	created, err := txRepo.Create(ctx, wallet.Transaction{
		DriverID:   d.ID,
		Kind:       wallet.KindPenalty,
		Direction:  wallet.DirectionSubtract,
		Amount:     decimal.NewFromInt(120),
		ProposedBy: "manager-1",
	})
	require.NoError(t, err)

	errBoom := errors.New("boom")
	err = transactor.WithinTx(ctx, func(ctx context.Context) error {
		resolved, err := txRepo.Resolve(ctx, created.ID, wallet.StatusApproved, "admin-1", time.Now())
		if err != nil {
			return err
		}
		if _, err := balanceRepo.Apply(ctx, d.ID, resolved.Delta()); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	got, err := txRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, wallet.StatusPending, got.Status)

	balance, err := balanceRepo.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestWalletBalanceRepository_ApplyAccumulates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	_, d := seedDriver(t, db, "9000000013")
	repo := postgresql.NewWalletBalanceRepository(db)

	balance, err := repo.Apply(ctx, d.ID, decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(500)))

	balance, err = repo.Apply(ctx, d.ID, decimal.NewFromInt(-200))
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(300)))

	require.NoError(t, repo.Set(ctx, d.ID, decimal.NewFromInt(42)))
	balance, err = repo.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(42)))
}
