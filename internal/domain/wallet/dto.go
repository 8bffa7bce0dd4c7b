package wallet

import (
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ProposeRequest creates a pending transaction. Kind defaults to reward and
// direction to add.
type ProposeRequest struct {
	DriverID  string           `json:"driver_id"`
	BranchID  *string          `json:"branch_id,omitempty"`
	Amount    *decimal.Decimal `json:"amount"`
	Kind      Kind             `json:"kind,omitempty"`
	Direction Direction        `json:"direction,omitempty"`
	Reason    string           `json:"reason"`
}

func (r *ProposeRequest) ApplyDefaults() {
	if r.Kind == "" {
		r.Kind = KindReward
	}
	if r.Direction == "" {
		r.Direction = DirectionAdd
	}
}

func (r *ProposeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DriverID) {
		errs = append(errs, validator.ValidationError{
			Field:   "driver_id",
			Message: "driver_id is required",
		})
	}

	if r.Amount == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount is required",
		})
	} else if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be greater than zero",
		})
	} else if !validator.FitsNumeric(*r.Amount, 14, 2) {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must have at most 2 decimal places and be below 1000000000000",
		})
	}

	if r.Kind != "" && !r.Kind.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: reward, advance, deposit, penalty",
		})
	}

	if r.Direction != "" && !r.Direction.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "direction",
			Message: "direction must be one of: add, subtract",
		})
	}

	if len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if r.BranchID != nil && validator.IsEmpty(*r.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id must not be empty if provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TransactionResponse struct {
	ID         string          `json:"id"`
	DriverID   string          `json:"driver_id"`
	BranchID   *string         `json:"branch_id,omitempty"`
	Kind       Kind            `json:"kind"`
	Direction  Direction       `json:"direction"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
	Status     Status          `json:"status"`
	ProposedBy string          `json:"proposed_by"`
	ResolvedBy *string         `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time      `json:"resolved_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func ToResponse(t Transaction) TransactionResponse {
	return TransactionResponse{
		ID:         t.ID,
		DriverID:   t.DriverID,
		BranchID:   t.BranchID,
		Kind:       t.Kind,
		Direction:  t.Direction,
		Amount:     t.Amount,
		Reason:     t.Reason,
		Status:     t.Status,
		ProposedBy: t.ProposedBy,
		ResolvedBy: t.ResolvedBy,
		ResolvedAt: t.ResolvedAt,
		CreatedAt:  t.CreatedAt,
	}
}

func ToResponses(txs []Transaction) []TransactionResponse {
	result := make([]TransactionResponse, 0, len(txs))
	for _, t := range txs {
		result = append(result, ToResponse(t))
	}
	return result
}

// Statement is a driver's approved totals plus their full history.
type Statement struct {
	DriverID      string                `json:"driver_id"`
	TotalAdd      decimal.Decimal       `json:"total_add"`
	TotalSubtract decimal.Decimal       `json:"total_subtract"`
	NetBalance    decimal.Decimal       `json:"net_balance"`
	Transactions  []TransactionResponse `json:"transactions"`
}

type KindGroup struct {
	Total        decimal.Decimal       `json:"total"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ApprovedListing holds either a flat list or per-kind groups.
type ApprovedListing struct {
	Transactions []TransactionResponse `json:"transactions,omitempty"`
	Groups       map[Kind]KindGroup    `json:"groups,omitempty"`
}

// GroupByKind buckets transactions by kind. Group totals are signed, so a
// subtract transaction lowers its kind's total.
func GroupByKind(txs []Transaction) map[Kind]KindGroup {
	groups := make(map[Kind]KindGroup)
	for _, t := range txs {
		g, ok := groups[t.Kind]
		if !ok {
			g = KindGroup{Total: decimal.Zero, Transactions: []TransactionResponse{}}
		}
		g.Total = g.Total.Add(t.Delta())
		g.Transactions = append(g.Transactions, ToResponse(t))
		groups[t.Kind] = g
	}
	return groups
}

type RecomputeResponse struct {
	DriverID      string          `json:"driver_id"`
	CachedBalance decimal.Decimal `json:"cached_balance"`
	NetBalance    decimal.Decimal `json:"net_balance"`
	Drifted       bool            `json:"drifted"`
}
