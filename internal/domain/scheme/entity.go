package scheme

import (
	"time"

	"github.com/shopspring/decimal"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	Frequency12Hour  Frequency = "12hr"
	FrequencyRental  Frequency = "rental"
)

var Frequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly, Frequency12Hour, FrequencyRental}

func (f Frequency) Valid() bool {
	for _, v := range Frequencies {
		if f == v {
			return true
		}
	}
	return false
}

// Fallback percentages used when a scheme leaves the field unset. An explicit
// zero on the scheme is kept as zero.
var (
	DefaultIncentiveBelowPct     = decimal.NewFromInt(30)
	DefaultIncentiveAbovePct     = decimal.NewFromInt(60)
	DefaultOperatorCommissionPct = decimal.NewFromInt(10)
	DefaultCNGAllowancePct       = decimal.NewFromInt(30)
)

// Scheme is a named pay formula. Nil numeric fields are unset.
type Scheme struct {
	Name                  string
	Frequency             Frequency
	Target                *decimal.Decimal
	IncentiveBelowPct     *decimal.Decimal
	IncentiveAbovePct     *decimal.Decimal
	OperatorCommissionPct *decimal.Decimal
	CNGAllowancePct       *decimal.Decimal
	ExtraRule             *string
	Notes                 *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (s Scheme) TargetOrZero() decimal.Decimal {
	if s.Target == nil {
		return decimal.Zero
	}
	return *s.Target
}

func (s Scheme) BelowPct() decimal.Decimal {
	return valueOr(s.IncentiveBelowPct, DefaultIncentiveBelowPct)
}

func (s Scheme) AbovePct() decimal.Decimal {
	return valueOr(s.IncentiveAbovePct, DefaultIncentiveAbovePct)
}

func (s Scheme) OperatorPct() decimal.Decimal {
	return valueOr(s.OperatorCommissionPct, DefaultOperatorCommissionPct)
}

func (s Scheme) CNGPct() decimal.Decimal {
	return valueOr(s.CNGAllowancePct, DefaultCNGAllowancePct)
}

// PickupBonus returns the scheme's pickup bonus rule, if it has one.
func (s Scheme) PickupBonus() (PickupBonusRule, bool) {
	if s.ExtraRule == nil {
		return PickupBonusRule{}, false
	}
	return ParsePickupBonus(*s.ExtraRule)
}

func valueOr(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v == nil {
		return fallback
	}
	return *v
}
