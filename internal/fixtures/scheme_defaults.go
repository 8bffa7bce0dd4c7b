package fixtures

import (
	"context"
	"errors"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/branch"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/scheme"
	"github.com/shopspring/decimal"
)

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func strPtr(s string) *string { return &s }

// GetDefaultSchemes returns the scheme catalogue a fresh installation starts with.
func GetDefaultSchemes() []scheme.Scheme {
	standard := func(name string, frequency scheme.Frequency, target int64) scheme.Scheme {
		return scheme.Scheme{
			Name:                  name,
			Frequency:             frequency,
			Target:                decPtr(target),
			IncentiveBelowPct:     decPtr(30),
			IncentiveAbovePct:     decPtr(60),
			OperatorCommissionPct: decPtr(10),
			CNGAllowancePct:       decPtr(30),
		}
	}
	rental := func(name string, target int64) scheme.Scheme {
		return scheme.Scheme{
			Name:                  name,
			Frequency:             scheme.FrequencyRental,
			Target:                decPtr(target),
			IncentiveBelowPct:     decPtr(0),
			IncentiveAbovePct:     decPtr(0),
			OperatorCommissionPct: decPtr(10),
			CNGAllowancePct:       decPtr(30),
			Notes:                 strPtr("Fixed rent collected from the driver"),
		}
	}

	daily := standard("Daily Salary", scheme.FrequencyDaily, 4500)
	daily.ExtraRule = strPtr("daily_15_pickups_300")
	daily.Notes = strPtr("Rs 300 bonus for 15 or more pickups when the target is met")

	return []scheme.Scheme{
		daily,
		standard("Weekly Salary", scheme.FrequencyWeekly, 21000),
		standard("Monthly Salary", scheme.FrequencyMonthly, 90000),
		standard("12H Shift", scheme.Frequency12Hour, 2500),
		rental("Car Rental 1600", 1600),
		rental("Car Rental 1700", 1700),
	}
}

// GetDefaultBranch is the branch created for an empty installation.
func GetDefaultBranch() branch.Branch {
	return branch.Branch{
		Name:     "Head Office",
		Location: "Head Office",
	}
}

// SeedSchemes creates every default scheme that is not already registered.
// Existing schemes are left untouched. It returns the names it created.
func SeedSchemes(ctx context.Context, repo scheme.SchemeRepository) ([]string, error) {
	var created []string
	for _, s := range GetDefaultSchemes() {
		_, err := repo.GetByName(ctx, s.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, scheme.ErrSchemeNotFound) {
			return created, err
		}
		if _, err := repo.Create(ctx, s); err != nil {
			if errors.Is(err, scheme.ErrSchemeNameExists) {
				continue
			}
			return created, err
		}
		created = append(created, s.Name)
	}
	return created, nil
}
