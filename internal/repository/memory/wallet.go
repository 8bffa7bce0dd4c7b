package memory

import (
	"context"
	"sort"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/wallet"
	"github.com/shopspring/decimal"
)

type walletTransactionRepository struct {
	store *Store
}

func NewWalletTransactionRepository(store *Store) wallet.TransactionRepository {
	return &walletTransactionRepository{store: store}
}

func (r *walletTransactionRepository) Create(ctx context.Context, t wallet.Transaction) (wallet.Transaction, error) {
	err := r.store.write(ctx, func() error {
		now := time.Now()
		t.ID = newID()
		t.Status = wallet.StatusPending
		t.ResolvedBy = nil
		t.ResolvedAt = nil
		t.CreatedAt = now
		t.UpdatedAt = now
		r.store.transactions[t.ID] = t
		return nil
	})
	if err != nil {
		return wallet.Transaction{}, err
	}
	return t, nil
}

func (r *walletTransactionRepository) GetByID(ctx context.Context, id string) (wallet.Transaction, error) {
	var t wallet.Transaction
	err := r.store.read(ctx, func() error {
		found, ok := r.store.transactions[id]
		if !ok {
			return wallet.ErrTransactionNotFound
		}
		t = found
		return nil
	})
	return t, err
}

func (r *walletTransactionRepository) Resolve(ctx context.Context, id string, status wallet.Status, resolvedBy string, resolvedAt time.Time) (wallet.Transaction, error) {
	var t wallet.Transaction
	err := r.store.write(ctx, func() error {
		found, ok := r.store.transactions[id]
		if !ok {
			return wallet.ErrTransactionNotFound
		}
		if found.Status != wallet.StatusPending {
			return wallet.ErrTransactionNotPending
		}
		found.Status = status
		found.ResolvedBy = &resolvedBy
		found.ResolvedAt = &resolvedAt
		found.UpdatedAt = resolvedAt
		r.store.transactions[id] = found
		t = found
		return nil
	})
	return t, err
}

func (r *walletTransactionRepository) filter(ctx context.Context, keep func(wallet.Transaction) bool) ([]wallet.Transaction, error) {
	txs := []wallet.Transaction{}
	err := r.store.read(ctx, func() error {
		for _, t := range r.store.transactions {
			if keep(t) {
				txs = append(txs, t)
			}
		}
		return nil
	})
	sort.Slice(txs, func(i, j int) bool {
		if txs[i].CreatedAt.Equal(txs[j].CreatedAt) {
			return txs[i].ID > txs[j].ID
		}
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})
	return txs, err
}

func (r *walletTransactionRepository) ListByDriver(ctx context.Context, driverID string) ([]wallet.Transaction, error) {
	return r.filter(ctx, func(t wallet.Transaction) bool { return t.DriverID == driverID })
}

func (r *walletTransactionRepository) ListByStatus(ctx context.Context, status wallet.Status, branchID *string) ([]wallet.Transaction, error) {
	return r.filter(ctx, func(t wallet.Transaction) bool {
		if t.Status != status {
			return false
		}
		if branchID == nil {
			return true
		}
		return t.BranchID != nil && *t.BranchID == *branchID
	})
}

func (r *walletTransactionRepository) ApprovedTotals(ctx context.Context, driverID string) (wallet.Totals, error) {
	txs, err := r.ListByDriver(ctx, driverID)
	if err != nil {
		return wallet.Totals{}, err
	}
	return wallet.SumApproved(txs), nil
}

type walletBalanceRepository struct {
	store *Store
}

func NewWalletBalanceRepository(store *Store) wallet.BalanceRepository {
	return &walletBalanceRepository{store: store}
}

func (r *walletBalanceRepository) Apply(ctx context.Context, driverID string, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.store.write(ctx, func() error {
		balance = r.store.balances[driverID].Add(delta)
		r.store.balances[driverID] = balance
		return nil
	})
	return balance, err
}

func (r *walletBalanceRepository) Get(ctx context.Context, driverID string) (decimal.Decimal, error) {
	balance := decimal.Zero
	err := r.store.read(ctx, func() error {
		if b, ok := r.store.balances[driverID]; ok {
			balance = b
		}
		return nil
	})
	return balance, err
}

func (r *walletBalanceRepository) Set(ctx context.Context, driverID string, balance decimal.Decimal) error {
	return r.store.write(ctx, func() error {
		r.store.balances[driverID] = balance
		return nil
	})
}
