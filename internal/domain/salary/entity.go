package salary

import (
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/scheme"
	"github.com/shopspring/decimal"
)

// Input is one period's pre-aggregated figures for a driver. A nil Scheme
// yields an all-zero Result.
type Input struct {
	Scheme         *scheme.Scheme
	TotalEarnings  decimal.Decimal
	CommissionBase decimal.Decimal
	CNGSpend       decimal.Decimal
	PickupCount    int
}

type Result struct {
	FinalSalary       decimal.Decimal `json:"final_salary"`
	Incentive         decimal.Decimal `json:"incentive"`
	Bonus             decimal.Decimal `json:"bonus"`
	CNGCredit         decimal.Decimal `json:"cng_credit"`
	OperatorDeduction decimal.Decimal `json:"operator_deduction"`
	Breakdown         Breakdown       `json:"breakdown"`
}

// Breakdown records the effective rates the calculator used after fallbacks.
type Breakdown struct {
	Target      decimal.Decimal `json:"target"`
	BelowPct    decimal.Decimal `json:"incentive_below_pct"`
	AbovePct    decimal.Decimal `json:"incentive_above_pct"`
	OperatorPct decimal.Decimal `json:"operator_commission_pct"`
	CNGPct      decimal.Decimal `json:"cng_allowance_pct"`
}

// Assignment links a driver to the scheme they are paid under.
type Assignment struct {
	DriverID   string
	SchemeName string
	BranchID   *string
	AssignedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
