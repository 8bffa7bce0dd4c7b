package scheme

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultPickupThreshold = 15
	DefaultPickupBonus     = 300
)

// PickupBonusRule grants Amount when a daily driver reaches Threshold pickups
// and meets the scheme target.
type PickupBonusRule struct {
	Threshold int
	Amount    decimal.Decimal
}

// ParsePickupBonus reads an extra rule of the form
//
//	pickups_<amount>
//	daily_<threshold>_pickups_<amount>
//
// "daily_15_pickups_300" and "pickups_300" both mean 15 pickups earn 300.
func ParsePickupBonus(rule string) (PickupBonusRule, bool) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(rule)), "_")
	threshold := DefaultPickupThreshold

	switch {
	case len(parts) == 2 && parts[0] == "pickups":
	case len(parts) == 4 && parts[0] == "daily" && parts[2] == "pickups":
		n, err := strconv.Atoi(parts[1])
		if err != nil || n <= 0 {
			return PickupBonusRule{}, false
		}
		threshold = n
		parts = parts[2:]
	default:
		return PickupBonusRule{}, false
	}

	amount, err := decimal.NewFromString(parts[1])
	if err != nil || !amount.IsPositive() {
		return PickupBonusRule{}, false
	}

	return PickupBonusRule{Threshold: threshold, Amount: amount}, true
}
