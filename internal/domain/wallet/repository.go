package wallet

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	Create(ctx context.Context, t Transaction) (Transaction, error)
	GetByID(ctx context.Context, id string) (Transaction, error)
	// Resolve moves a pending transaction to status. Returns
	// ErrTransactionNotPending if it is no longer pending.
	Resolve(ctx context.Context, id string, status Status, resolvedBy string, resolvedAt time.Time) (Transaction, error)
	// ListByDriver returns every transaction of the driver, newest first.
	ListByDriver(ctx context.Context, driverID string) ([]Transaction, error)
	// ListByStatus returns transactions in status, newest first, optionally
	// limited to one branch.
	ListByStatus(ctx context.Context, status Status, branchID *string) ([]Transaction, error)
	// ApprovedTotals sums the driver's approved transactions.
	ApprovedTotals(ctx context.Context, driverID string) (Totals, error)
}

// BalanceRepository stores the cached balance projection.
type BalanceRepository interface {
	// Apply adds delta to the driver's cached balance and returns the new value.
	Apply(ctx context.Context, driverID string, delta decimal.Decimal) (decimal.Decimal, error)
	// Get returns zero for drivers without a cached balance.
	Get(ctx context.Context, driverID string) (decimal.Decimal, error)
	Set(ctx context.Context, driverID string, balance decimal.Decimal) error
}
