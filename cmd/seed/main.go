package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/config"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/branch"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/user"
	"github.com/fleetdesk/fleet-backend-go/internal/fixtures"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/database"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/jwt"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/logger"
	"github.com/fleetdesk/fleet-backend-go/internal/repository/postgresql"
)

func main() {
	branchName := flag.String("branch", "", "create a branch with this name if it does not exist")
	adminID := flag.String("admin", "", "print an admin access token for this user id")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}
	log := logger.New(os.Stderr, cfg.App.LogLevel, cfg.App.Env)

	if cfg.Storage.Driver != config.StorageDriverPostgres {
		log.Error("seeding requires postgres storage", slog.String("storage", cfg.Storage.Driver))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db, log); err != nil {
		log.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	created, err := fixtures.SeedSchemes(ctx, postgresql.NewSchemeRepository(db))
	if err != nil {
		log.Error("failed to seed schemes", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("schemes seeded", slog.Any("created", created))

	if *branchName != "" {
		b := fixtures.GetDefaultBranch()
		b.Name = *branchName
		b.Location = *branchName
		b, err = postgresql.NewBranchRepository(db).Create(ctx, b)
		switch {
		case errors.Is(err, branch.ErrBranchNameExists):
			log.Info("branch already exists", slog.String("name", *branchName))
		case err != nil:
			log.Error("failed to create branch", slog.Any("error", err))
			os.Exit(1)
		default:
			log.Info("branch created", slog.String("id", b.ID), slog.String("name", b.Name))
		}
	}

	if *adminID != "" {
		token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).
			GenerateAccessToken(user.Actor{ID: *adminID, Role: user.RoleAdmin})
		if err != nil {
			log.Error("failed to mint admin token", slog.Any("error", err))
			os.Exit(1)
		}
		log.Info("admin token minted", slog.Time("expires_at", time.Unix(expiresAt, 0)))
		fmt.Println(token)
	}
}
