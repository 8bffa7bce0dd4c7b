package postgresql

import (
	"context"
	"fmt"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/scheme"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type schemeRepositoryImpl struct {
	db *database.DB
}

func NewSchemeRepository(db *database.DB) scheme.SchemeRepository {
	return &schemeRepositoryImpl{db: db}
}

const schemeColumns = `name, frequency, target, incentive_below_pct, incentive_above_pct,
	operator_commission_pct, cng_allowance_pct, extra_rule, notes, created_at, updated_at`

func scanScheme(row rowScanner) (scheme.Scheme, error) {
	var (
		s                                      scheme.Scheme
		target, below, above, operator, cngPct decimal.NullDecimal
	)
	err := row.Scan(
		&s.Name,
		&s.Frequency,
		&target,
		&below,
		&above,
		&operator,
		&cngPct,
		&s.ExtraRule,
		&s.Notes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return scheme.Scheme{}, err
	}
	s.Target = fromNullDecimal(target)
	s.IncentiveBelowPct = fromNullDecimal(below)
	s.IncentiveAbovePct = fromNullDecimal(above)
	s.OperatorCommissionPct = fromNullDecimal(operator)
	s.CNGAllowancePct = fromNullDecimal(cngPct)
	return s, nil
}

func schemeArgs(s scheme.Scheme) []interface{} {
	return []interface{}{
		s.Name,
		s.Frequency,
		toNullDecimal(s.Target),
		toNullDecimal(s.IncentiveBelowPct),
		toNullDecimal(s.IncentiveAbovePct),
		toNullDecimal(s.OperatorCommissionPct),
		toNullDecimal(s.CNGAllowancePct),
		s.ExtraRule,
		s.Notes,
	}
}

// Create implements scheme.SchemeRepository.
func (r *schemeRepositoryImpl) Create(ctx context.Context, s scheme.Scheme) (scheme.Scheme, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_schemes (name, frequency, target, incentive_below_pct, incentive_above_pct,
			operator_commission_pct, cng_allowance_pct, extra_rule, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING ` + schemeColumns

	result, err := scanScheme(q.QueryRow(ctx, query, schemeArgs(s)...))
	if err != nil {
		if isUniqueViolation(err) {
			return scheme.Scheme{}, scheme.ErrSchemeNameExists
		}
		return scheme.Scheme{}, fmt.Errorf("failed to create salary scheme: %w", err)
	}

	return result, nil
}

// GetByName implements scheme.SchemeRepository.
func (r *schemeRepositoryImpl) GetByName(ctx context.Context, name string) (scheme.Scheme, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + schemeColumns + ` FROM salary_schemes WHERE name = $1`

	result, err := scanScheme(q.QueryRow(ctx, query, name))
	if err != nil {
		if isNoRows(err) {
			return scheme.Scheme{}, scheme.ErrSchemeNotFound
		}
		return scheme.Scheme{}, fmt.Errorf("failed to get salary scheme: %w", err)
	}

	return result, nil
}

// List implements scheme.SchemeRepository.
func (r *schemeRepositoryImpl) List(ctx context.Context) ([]scheme.Scheme, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + schemeColumns + ` FROM salary_schemes ORDER BY name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary schemes: %w", err)
	}
	defer rows.Close()

	schemes := []scheme.Scheme{}
	for rows.Next() {
		s, err := scanScheme(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary scheme: %w", err)
		}
		schemes = append(schemes, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return schemes, nil
}

// Replace implements scheme.SchemeRepository. Every column is overwritten.
func (r *schemeRepositoryImpl) Replace(ctx context.Context, s scheme.Scheme) (scheme.Scheme, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_schemes
		SET frequency = $2,
			target = $3,
			incentive_below_pct = $4,
			incentive_above_pct = $5,
			operator_commission_pct = $6,
			cng_allowance_pct = $7,
			extra_rule = $8,
			notes = $9,
			updated_at = NOW()
		WHERE name = $1
		RETURNING ` + schemeColumns

	result, err := scanScheme(q.QueryRow(ctx, query, schemeArgs(s)...))
	if err != nil {
		if isNoRows(err) {
			return scheme.Scheme{}, scheme.ErrSchemeNotFound
		}
		return scheme.Scheme{}, fmt.Errorf("failed to replace salary scheme: %w", err)
	}

	return result, nil
}
