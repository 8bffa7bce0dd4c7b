package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/wallet"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type walletTransactionRepositoryImpl struct {
	db *database.DB
}

func NewWalletTransactionRepository(db *database.DB) wallet.TransactionRepository {
	return &walletTransactionRepositoryImpl{db: db}
}

const walletColumns = `id, driver_id, branch_id, kind, direction, amount, reason, status,
	proposed_by, resolved_by, resolved_at, created_at, updated_at`

func scanTransaction(row rowScanner) (wallet.Transaction, error) {
	var t wallet.Transaction
	err := row.Scan(
		&t.ID,
		&t.DriverID,
		&t.BranchID,
		&t.Kind,
		&t.Direction,
		&t.Amount,
		&t.Reason,
		&t.Status,
		&t.ProposedBy,
		&t.ResolvedBy,
		&t.ResolvedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func collectTransactions(rows pgx.Rows) ([]wallet.Transaction, error) {
	defer rows.Close()

	txs := []wallet.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet transaction: %w", err)
		}
		txs = append(txs, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return txs, nil
}

// Create implements wallet.TransactionRepository.
func (r *walletTransactionRepositoryImpl) Create(ctx context.Context, t wallet.Transaction) (wallet.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO wallet_transactions (id, driver_id, branch_id, kind, direction, amount, reason, status,
			proposed_by, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, 'pending', $7, NOW(), NOW())
		RETURNING ` + walletColumns

	result, err := scanTransaction(q.QueryRow(ctx, query,
		t.DriverID,
		t.BranchID,
		t.Kind,
		t.Direction,
		t.Amount,
		t.Reason,
		t.ProposedBy,
	))
	if err != nil {
		return wallet.Transaction{}, fmt.Errorf("failed to create wallet transaction: %w", err)
	}

	return result, nil
}

// GetByID implements wallet.TransactionRepository.
func (r *walletTransactionRepositoryImpl) GetByID(ctx context.Context, id string) (wallet.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + walletColumns + ` FROM wallet_transactions WHERE id = $1`

	result, err := scanTransaction(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return wallet.Transaction{}, wallet.ErrTransactionNotFound
		}
		return wallet.Transaction{}, fmt.Errorf("failed to get wallet transaction: %w", err)
	}

	return result, nil
}

// Resolve implements wallet.TransactionRepository.
func (r *walletTransactionRepositoryImpl) Resolve(ctx context.Context, id string, status wallet.Status, resolvedBy string, resolvedAt time.Time) (wallet.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE wallet_transactions
		SET status = $2, resolved_by = $3, resolved_at = $4, updated_at = $4
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + walletColumns

	result, err := scanTransaction(q.QueryRow(ctx, query, id, status, resolvedBy, resolvedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, findErr := r.GetByID(ctx, id); findErr != nil {
				return wallet.Transaction{}, findErr
			}
			return wallet.Transaction{}, wallet.ErrTransactionNotPending
		}
		if isNoRows(err) {
			return wallet.Transaction{}, wallet.ErrTransactionNotFound
		}
		return wallet.Transaction{}, fmt.Errorf("failed to resolve wallet transaction: %w", err)
	}

	return result, nil
}

// ListByDriver implements wallet.TransactionRepository.
func (r *walletTransactionRepositoryImpl) ListByDriver(ctx context.Context, driverID string) ([]wallet.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + walletColumns + ` FROM wallet_transactions WHERE driver_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := q.Query(ctx, query, driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallet transactions: %w", err)
	}
	return collectTransactions(rows)
}

// ListByStatus implements wallet.TransactionRepository.
func (r *walletTransactionRepositoryImpl) ListByStatus(ctx context.Context, status wallet.Status, branchID *string) ([]wallet.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + walletColumns + ` FROM wallet_transactions WHERE status = $1`
	args := []interface{}{status}
	if branchID != nil {
		query += ` AND branch_id = $2`
		args = append(args, *branchID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallet transactions: %w", err)
	}
	return collectTransactions(rows)
}

// ApprovedTotals implements wallet.TransactionRepository.
func (r *walletTransactionRepositoryImpl) ApprovedTotals(ctx context.Context, driverID string) (wallet.Totals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE direction = 'add'), 0),
			COALESCE(SUM(amount) FILTER (WHERE direction = 'subtract'), 0)
		FROM wallet_transactions
		WHERE driver_id = $1 AND status = 'approved'`

	var totals wallet.Totals
	if err := q.QueryRow(ctx, query, driverID).Scan(&totals.TotalAdd, &totals.TotalSubtract); err != nil {
		return wallet.Totals{}, fmt.Errorf("failed to sum wallet transactions: %w", err)
	}

	return totals, nil
}

type walletBalanceRepositoryImpl struct {
	db *database.DB
}

func NewWalletBalanceRepository(db *database.DB) wallet.BalanceRepository {
	return &walletBalanceRepositoryImpl{db: db}
}

// Apply implements wallet.BalanceRepository.
func (r *walletBalanceRepositoryImpl) Apply(ctx context.Context, driverID string, delta decimal.Decimal) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO wallet_balances (driver_id, balance, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (driver_id) DO UPDATE
		SET balance = wallet_balances.balance + EXCLUDED.balance, updated_at = NOW()
		RETURNING balance`

	var balance decimal.Decimal
	if err := q.QueryRow(ctx, query, driverID, delta).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to apply wallet balance delta: %w", err)
	}

	return balance, nil
}

// Get implements wallet.BalanceRepository.
func (r *walletBalanceRepositoryImpl) Get(ctx context.Context, driverID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	var balance decimal.Decimal
	err := q.QueryRow(ctx, `SELECT balance FROM wallet_balances WHERE driver_id = $1`, driverID).Scan(&balance)
	if err != nil {
		if isNoRows(err) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to get wallet balance: %w", err)
	}

	return balance, nil
}

// Set implements wallet.BalanceRepository.
func (r *walletBalanceRepositoryImpl) Set(ctx context.Context, driverID string, balance decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO wallet_balances (driver_id, balance, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (driver_id) DO UPDATE
		SET balance = EXCLUDED.balance, updated_at = NOW()`

	if _, err := q.Exec(ctx, query, driverID, balance); err != nil {
		return fmt.Errorf("failed to set wallet balance: %w", err)
	}

	return nil
}
