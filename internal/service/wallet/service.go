package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/driver"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/user"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/wallet"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/database"
	"golang.org/x/sync/errgroup"
)

type WalletServiceImpl struct {
	tx          database.Transactor
	txRepo      wallet.TransactionRepository
	balanceRepo wallet.BalanceRepository
	driverRepo  driver.DriverRepository
	logger      *slog.Logger
}

func NewWalletService(
	tx database.Transactor,
	txRepo wallet.TransactionRepository,
	balanceRepo wallet.BalanceRepository,
	driverRepo driver.DriverRepository,
	logger *slog.Logger,
) wallet.WalletService {
	return &WalletServiceImpl{
		tx:          tx,
		txRepo:      txRepo,
		balanceRepo: balanceRepo,
		driverRepo:  driverRepo,
		logger:      logger,
	}
}

// Propose implements wallet.WalletService. The transaction is created pending
// and has no effect on the balance until approved.
func (s *WalletServiceImpl) Propose(ctx context.Context, req wallet.ProposeRequest, actor user.Actor) (wallet.TransactionResponse, error) {
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return wallet.TransactionResponse{}, err
	}

	d, err := s.driverRepo.FindByID(ctx, req.DriverID)
	if err != nil {
		return wallet.TransactionResponse{}, err
	}

	branchID := req.BranchID
	if branchID == nil {
		branchID = d.BranchID
	}

	created, err := s.txRepo.Create(ctx, wallet.Transaction{
		DriverID:   d.ID,
		BranchID:   branchID,
		Kind:       req.Kind,
		Direction:  req.Direction,
		Amount:     *req.Amount,
		Reason:     req.Reason,
		ProposedBy: actor.ID,
	})
	if err != nil {
		return wallet.TransactionResponse{}, fmt.Errorf("failed to create wallet transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "wallet transaction proposed",
		slog.String("transaction_id", created.ID),
		slog.String("driver_id", created.DriverID),
		slog.String("kind", string(created.Kind)),
		slog.String("direction", string(created.Direction)),
		slog.String("amount", created.Amount.String()),
		slog.String("proposed_by", actor.ID),
	)
	return wallet.ToResponse(created), nil
}

// Resolve implements wallet.WalletService. The status change and the balance
// update commit together or not at all.
func (s *WalletServiceImpl) Resolve(ctx context.Context, id string, outcome wallet.Outcome, actor user.Actor) (wallet.TransactionResponse, error) {
	status, ok := outcome.Status()
	if !ok {
		return wallet.TransactionResponse{}, wallet.ErrInvalidOutcome
	}

	var (
		resolved wallet.Transaction
		balance  string
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		t, err := s.txRepo.Resolve(ctx, id, status, actor.ID, time.Now())
		if err != nil {
			return err
		}
		if t.Status == wallet.StatusApproved {
			newBalance, err := s.balanceRepo.Apply(ctx, t.DriverID, t.Delta())
			if err != nil {
				return fmt.Errorf("failed to update wallet balance: %w", err)
			}
			balance = newBalance.String()
		}
		resolved = t
		return nil
	})
	if err != nil {
		return wallet.TransactionResponse{}, err
	}

	attrs := []any{
		slog.String("transaction_id", resolved.ID),
		slog.String("driver_id", resolved.DriverID),
		slog.String("status", string(resolved.Status)),
		slog.String("resolved_by", actor.ID),
	}
	if balance != "" {
		attrs = append(attrs, slog.String("balance", balance))
	}
	s.logger.InfoContext(ctx, "wallet transaction resolved", attrs...)

	return wallet.ToResponse(resolved), nil
}

// Get implements wallet.WalletService.
func (s *WalletServiceImpl) Get(ctx context.Context, id string) (wallet.TransactionResponse, error) {
	t, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return wallet.TransactionResponse{}, err
	}
	return wallet.ToResponse(t), nil
}

// DriverStatement implements wallet.WalletService. Totals count approved
// transactions only; the history lists every status.
func (s *WalletServiceImpl) DriverStatement(ctx context.Context, driverID string) (wallet.Statement, error) {
	if _, err := s.driverRepo.FindByID(ctx, driverID); err != nil {
		return wallet.Statement{}, err
	}

	var (
		totals  wallet.Totals
		history []wallet.Transaction
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t, err := s.txRepo.ApprovedTotals(gCtx, driverID)
		if err != nil {
			return fmt.Errorf("failed to sum approved transactions: %w", err)
		}
		totals = t
		return nil
	})

	g.Go(func() error {
		txs, err := s.txRepo.ListByDriver(gCtx, driverID)
		if err != nil {
			return fmt.Errorf("failed to list driver transactions: %w", err)
		}
		history = txs
		return nil
	})

	if err := g.Wait(); err != nil {
		return wallet.Statement{}, err
	}

	return wallet.Statement{
		DriverID:      driverID,
		TotalAdd:      totals.TotalAdd,
		TotalSubtract: totals.TotalSubtract,
		NetBalance:    totals.Net(),
		Transactions:  wallet.ToResponses(history),
	}, nil
}

// ListPending implements wallet.WalletService.
func (s *WalletServiceImpl) ListPending(ctx context.Context, branchID *string) ([]wallet.TransactionResponse, error) {
	txs, err := s.txRepo.ListByStatus(ctx, wallet.StatusPending, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transactions: %w", err)
	}
	return wallet.ToResponses(txs), nil
}

// ListApproved implements wallet.WalletService.
func (s *WalletServiceImpl) ListApproved(ctx context.Context, branchID *string, groupByKind bool) (wallet.ApprovedListing, error) {
	txs, err := s.txRepo.ListByStatus(ctx, wallet.StatusApproved, branchID)
	if err != nil {
		return wallet.ApprovedListing{}, fmt.Errorf("failed to list approved transactions: %w", err)
	}

	if groupByKind {
		return wallet.ApprovedListing{Groups: wallet.GroupByKind(txs)}, nil
	}
	return wallet.ApprovedListing{Transactions: wallet.ToResponses(txs)}, nil
}

// RecomputeBalance implements wallet.WalletService. The approved log is
// authoritative; the cached balance is overwritten with the recomputed net.
func (s *WalletServiceImpl) RecomputeBalance(ctx context.Context, driverID string) (wallet.RecomputeResponse, error) {
	if _, err := s.driverRepo.FindByID(ctx, driverID); err != nil {
		return wallet.RecomputeResponse{}, err
	}

	var resp wallet.RecomputeResponse
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		totals, err := s.txRepo.ApprovedTotals(ctx, driverID)
		if err != nil {
			return fmt.Errorf("failed to sum approved transactions: %w", err)
		}
		cached, err := s.balanceRepo.Get(ctx, driverID)
		if err != nil {
			return fmt.Errorf("failed to read cached balance: %w", err)
		}
		net := totals.Net()
		if err := s.balanceRepo.Set(ctx, driverID, net); err != nil {
			return fmt.Errorf("failed to store recomputed balance: %w", err)
		}
		resp = wallet.RecomputeResponse{
			DriverID:      driverID,
			CachedBalance: cached,
			NetBalance:    net,
			Drifted:       !cached.Equal(net),
		}
		return nil
	})
	if err != nil {
		return wallet.RecomputeResponse{}, err
	}

	if resp.Drifted {
		s.logger.WarnContext(ctx, "wallet balance drift corrected",
			slog.String("driver_id", driverID),
			slog.String("cached", resp.CachedBalance.String()),
			slog.String("recomputed", resp.NetBalance.String()),
		)
	}
	return resp, nil
}
