package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/config"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/branch"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/driver"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/duty"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/salary"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/scheme"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/vehicle"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/wallet"
	"github.com/fleetdesk/fleet-backend-go/internal/fixtures"
	appHTTP "github.com/fleetdesk/fleet-backend-go/internal/handler/http"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/database"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/jwt"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/logger"
	"github.com/fleetdesk/fleet-backend-go/internal/repository/memory"
	"github.com/fleetdesk/fleet-backend-go/internal/repository/postgresql"
	serviceBranch "github.com/fleetdesk/fleet-backend-go/internal/service/branch"
	serviceDriver "github.com/fleetdesk/fleet-backend-go/internal/service/driver"
	serviceDuty "github.com/fleetdesk/fleet-backend-go/internal/service/duty"
	serviceSalary "github.com/fleetdesk/fleet-backend-go/internal/service/salary"
	serviceScheme "github.com/fleetdesk/fleet-backend-go/internal/service/scheme"
	serviceVehicle "github.com/fleetdesk/fleet-backend-go/internal/service/vehicle"
	serviceWallet "github.com/fleetdesk/fleet-backend-go/internal/service/wallet"
)

type repositories struct {
	tx         database.Transactor
	scheme     scheme.SchemeRepository
	assignment salary.AssignmentRepository
	session    duty.SessionRepository
	walletTx   wallet.TransactionRepository
	balance    wallet.BalanceRepository
	driver     driver.DriverRepository
	branch     branch.BranchRepository
	vehicle    vehicle.VehicleRepository
	closeFn    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.App.LogLevel, cfg.App.Env)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos, err := newRepositories(startupCtx, cfg, log)
	if err != nil {
		return err
	}
	defer repos.closeFn()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	schemeService := serviceScheme.NewSchemeService(repos.scheme, log)
	salaryService := serviceSalary.NewSalaryService(
		serviceSalary.NewCalculator(),
		repos.scheme,
		repos.assignment,
		repos.driver,
		repos.branch,
		log,
	)
	dutyService := serviceDuty.NewDutyService(repos.tx, repos.session, repos.driver, repos.branch, repos.vehicle, log)
	walletService := serviceWallet.NewWalletService(repos.tx, repos.walletTx, repos.balance, repos.driver, log)
	driverService := serviceDriver.NewDriverService(repos.driver, repos.branch, log)
	branchService := serviceBranch.NewBranchService(repos.branch)
	vehicleService := serviceVehicle.NewVehicleService(repos.vehicle, repos.branch, log)

	router := appHTTP.NewRouter(
		log,
		cfg.App.AllowedOrigins,
		JWTService,
		appHTTP.NewSchemeHandler(schemeService),
		appHTTP.NewSalaryHandler(salaryService, driverService),
		appHTTP.NewDutyHandler(dutyService, driverService),
		appHTTP.NewWalletHandler(walletService, driverService),
		appHTTP.NewDriverHandler(driverService),
		appHTTP.NewBranchHandler(branchService),
		appHTTP.NewVehicleHandler(vehicleService, driverService),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server starting",
			slog.String("addr", server.Addr),
			slog.String("storage", cfg.Storage.Driver),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		log.Info("shutting down server", slog.String("signal", sig.String()))
	}

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func newRepositories(ctx context.Context, cfg *config.Config, log *slog.Logger) (*repositories, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := database.RunMigrations(db, log); err != nil {
			db.Close()
			return nil, err
		}
		return &repositories{
			tx:         postgresql.NewTransactor(db),
			scheme:     postgresql.NewSchemeRepository(db),
			assignment: postgresql.NewSalaryAssignmentRepository(db),
			session:    postgresql.NewDutySessionRepository(db),
			walletTx:   postgresql.NewWalletTransactionRepository(db),
			balance:    postgresql.NewWalletBalanceRepository(db),
			driver:     postgresql.NewDriverRepository(db),
			branch:     postgresql.NewBranchRepository(db),
			vehicle:    postgresql.NewVehicleRepository(db),
			closeFn:    db.Close,
		}, nil

	case config.StorageDriverMemory:
		store := memory.NewStore()
		repos := &repositories{
			tx:         store,
			scheme:     memory.NewSchemeRepository(store),
			assignment: memory.NewSalaryAssignmentRepository(store),
			session:    memory.NewDutySessionRepository(store),
			walletTx:   memory.NewWalletTransactionRepository(store),
			balance:    memory.NewWalletBalanceRepository(store),
			driver:     memory.NewDriverRepository(store),
			branch:     memory.NewBranchRepository(store),
			vehicle:    memory.NewVehicleRepository(store),
			closeFn:    func() {},
		}

		// A fresh in-memory store gets the default catalogue and one branch so
		// the API is usable straight away.
		created, err := fixtures.SeedSchemes(ctx, repos.scheme)
		if err != nil {
			return nil, fmt.Errorf("seed schemes: %w", err)
		}
		hq, err := repos.branch.Create(ctx, fixtures.GetDefaultBranch())
		if err != nil {
			return nil, fmt.Errorf("seed branch: %w", err)
		}
		log.Warn("using in-memory storage, data is lost on restart",
			slog.Int("schemes_seeded", len(created)),
			slog.String("branch_id", hq.ID),
		)
		return repos, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}
}
