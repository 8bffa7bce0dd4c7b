package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindReward  Kind = "reward"
	KindAdvance Kind = "advance"
	KindDeposit Kind = "deposit"
	KindPenalty Kind = "penalty"
)

var Kinds = []Kind{KindReward, KindAdvance, KindDeposit, KindPenalty}

func (k Kind) Valid() bool {
	for _, v := range Kinds {
		if k == v {
			return true
		}
	}
	return false
}

// Direction carries the sign of a transaction; Amount is always a magnitude.
type Direction string

const (
	DirectionAdd      Direction = "add"
	DirectionSubtract Direction = "subtract"
)

func (d Direction) Valid() bool {
	return d == DirectionAdd || d == DirectionSubtract
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Outcome string

const (
	OutcomeApprove Outcome = "approve"
	OutcomeReject  Outcome = "reject"
)

// Status maps an outcome to the terminal status it produces.
func (o Outcome) Status() (Status, bool) {
	switch o {
	case OutcomeApprove:
		return StatusApproved, true
	case OutcomeReject:
		return StatusRejected, true
	}
	return "", false
}

type Transaction struct {
	ID         string
	DriverID   string
	BranchID   *string
	Kind       Kind
	Direction  Direction
	Amount     decimal.Decimal
	Reason     string
	Status     Status
	ProposedBy string
	ResolvedBy *string
	ResolvedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Delta is the signed effect the transaction has on a balance once approved.
func (t Transaction) Delta() decimal.Decimal {
	if t.Direction == DirectionSubtract {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Totals are sums over a driver's approved transactions.
type Totals struct {
	TotalAdd      decimal.Decimal
	TotalSubtract decimal.Decimal
}

func (t Totals) Net() decimal.Decimal {
	return t.TotalAdd.Sub(t.TotalSubtract)
}

// SumApproved folds the approved transactions of a log into Totals.
func SumApproved(txs []Transaction) Totals {
	totals := Totals{TotalAdd: decimal.Zero, TotalSubtract: decimal.Zero}
	for _, t := range txs {
		if t.Status != StatusApproved {
			continue
		}
		if t.Direction == DirectionSubtract {
			totals.TotalSubtract = totals.TotalSubtract.Add(t.Amount)
		} else {
			totals.TotalAdd = totals.TotalAdd.Add(t.Amount)
		}
	}
	return totals
}
