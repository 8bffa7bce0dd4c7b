package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/branch"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/driver"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/database"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/logger"
	"github.com/fleetdesk/fleet-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// tables are truncated in dependency order between tests.
var tables = []string{
	"wallet_balances",
	"wallet_transactions",
	"duty_sessions",
	"salary_assignments",
	"salary_schemes",
	"drivers",
	"vehicles",
	"branches",
}

// newTestDB connects to TEST_DATABASE_URL, applies migrations and empties
// every table. Tests are skipped when no database is configured.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(db.Close)

	require.NoError(t, database.RunMigrations(db, logger.Discard()))
	require.NoError(t, truncateAllTables(ctx, db))

	return db
}

func truncateAllTables(ctx context.Context, db *database.DB) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// seedDriver creates a branch and an active driver in it.
func seedDriver(t *testing.T, db *database.DB, mobile string) (branch.Branch, driver.Driver) {
	t.Helper()
	ctx := context.Background()

	b, err := postgresql.NewBranchRepository(db).Create(ctx, branch.Branch{Name: "Branch " + mobile, Location: "Kochi"})
	require.NoError(t, err)

	d, err := postgresql.NewDriverRepository(db).Create(ctx, driver.Driver{
		Name:     "Driver " + mobile,
		Mobile:   mobile,
		BranchID: &b.ID,
		Status:   driver.StatusActive,
	})
	require.NoError(t, err)

	return b, d
}
