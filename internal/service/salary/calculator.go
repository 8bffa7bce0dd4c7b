package salary

import (
	"github.com/fleetdesk/fleet-backend-go/internal/domain/salary"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/scheme"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Calculator applies a scheme's pay formula to one period's figures. It does
// no I/O and never fails.
type Calculator struct {
}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate implements salary.Calculator.
func (c *Calculator) Calculate(in salary.Input) salary.Result {
	if in.Scheme == nil {
		return zeroResult()
	}
	s := *in.Scheme

	breakdown := salary.Breakdown{
		Target:      s.TargetOrZero(),
		BelowPct:    s.BelowPct(),
		AbovePct:    s.AbovePct(),
		OperatorPct: s.OperatorPct(),
		CNGPct:      s.CNGPct(),
	}

	incentive := c.incentive(s.Frequency, in.TotalEarnings, breakdown)
	bonus := c.bonus(s, in)
	operatorDeduction := percentOf(in.CommissionBase, breakdown.OperatorPct)
	cngCredit := percentOf(in.CNGSpend, breakdown.CNGPct)

	final := in.TotalEarnings.
		Add(incentive).
		Add(bonus).
		Add(cngCredit).
		Sub(operatorDeduction)

	return salary.Result{
		FinalSalary:       final,
		Incentive:         incentive,
		Bonus:             bonus,
		CNGCredit:         cngCredit,
		OperatorDeduction: operatorDeduction,
		Breakdown:         breakdown,
	}
}

// incentive is a two-tier marginal schedule: earnings up to target earn
// BelowPct, the part strictly above earns AbovePct. Rental schemes and
// schemes without a positive target earn none.
func (c *Calculator) incentive(freq scheme.Frequency, earnings decimal.Decimal, b salary.Breakdown) decimal.Decimal {
	if freq == scheme.FrequencyRental || !b.Target.IsPositive() {
		return decimal.Zero
	}
	if earnings.LessThanOrEqual(b.Target) {
		return percentOf(earnings, b.BelowPct)
	}
	return percentOf(b.Target, b.BelowPct).Add(percentOf(earnings.Sub(b.Target), b.AbovePct))
}

// bonus requires all of: daily scheme, a pickup rule, enough pickups, and
// earnings at or above target.
func (c *Calculator) bonus(s scheme.Scheme, in salary.Input) decimal.Decimal {
	if s.Frequency != scheme.FrequencyDaily {
		return decimal.Zero
	}
	rule, ok := s.PickupBonus()
	if !ok {
		return decimal.Zero
	}
	if in.PickupCount < rule.Threshold {
		return decimal.Zero
	}
	if in.TotalEarnings.LessThan(s.TargetOrZero()) {
		return decimal.Zero
	}
	return rule.Amount
}

func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

func zeroResult() salary.Result {
	return salary.Result{
		FinalSalary:       decimal.Zero,
		Incentive:         decimal.Zero,
		Bonus:             decimal.Zero,
		CNGCredit:         decimal.Zero,
		OperatorDeduction: decimal.Zero,
		Breakdown: salary.Breakdown{
			Target:      decimal.Zero,
			BelowPct:    decimal.Zero,
			AbovePct:    decimal.Zero,
			OperatorPct: decimal.Zero,
			CNGPct:      decimal.Zero,
		},
	}
}
