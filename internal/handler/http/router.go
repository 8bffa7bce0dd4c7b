package http

import (
	"log/slog"
	"time"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/user"
	"github.com/fleetdesk/fleet-backend-go/internal/handler/http/middleware"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

const requestTimeout = 30 * time.Second

func NewRouter(
	logger *slog.Logger,
	allowedOrigins []string,
	JWTService jwt.Service,
	schemeHandler SchemeHandler,
	salaryHandler SalaryHandler,
	dutyHandler DutyHandler,
	walletHandler WalletHandler,
	driverHandler DriverHandler,
	branchHandler BranchHandler,
	vehicleHandler VehicleHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(requestTimeout))
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

		r.Route("/schemes", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionSchemeView)).Get("/", schemeHandler.List)
			r.With(middleware.RequirePermission(user.PermissionSchemeView)).Get("/{name}", schemeHandler.Get)

			// Head office only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Use(middleware.RequirePermission(user.PermissionSchemeManage))
				r.Post("/", schemeHandler.Create)
				r.Put("/{name}", schemeHandler.Replace)
			})
		})

		r.Route("/salary", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionSalaryCalculate)).Post("/calculate", salaryHandler.Calculate)
		})

		r.Route("/duty", func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionDutyOperate))
			r.Post("/start", dutyHandler.Start)
			r.Get("/{id}", dutyHandler.Get)
			r.Put("/{id}/end", dutyHandler.End)
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Route("/transactions", func(r chi.Router) {
				r.With(middleware.RequireManager, middleware.RequirePermission(user.PermissionWalletPropose)).Post("/", walletHandler.Propose)
				r.With(middleware.RequirePermission(user.PermissionWalletViewOwn)).Get("/{id}", walletHandler.Get)
				r.With(middleware.RequireAdmin, middleware.RequirePermission(user.PermissionWalletApprove)).Put("/{id}/{outcome}", walletHandler.Resolve)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionWalletViewAll))
				r.Get("/pending", walletHandler.ListPending)
				r.Get("/approved", walletHandler.ListApproved)
			})
		})

		r.Route("/drivers", func(r chi.Router) {
			r.With(middleware.RequireManager, middleware.RequirePermission(user.PermissionDriverManage)).Post("/", driverHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionDriverView)).Get("/", driverHandler.Get)

				// Onboarding decisions are head office only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Use(middleware.RequirePermission(user.PermissionDriverApprove))
					r.Put("/approve", driverHandler.Approve)
					r.Put("/reject", driverHandler.Reject)
				})

				r.With(middleware.RequirePermission(user.PermissionSalaryCalculate)).Get("/salary-assignment", salaryHandler.GetAssignment)
				r.With(middleware.RequireManager, middleware.RequirePermission(user.PermissionSalaryAssign)).Put("/salary-assignment", salaryHandler.Assign)

				r.With(middleware.RequirePermission(user.PermissionDutyOperate)).Get("/duty/active", dutyHandler.GetActive)

				r.With(middleware.RequirePermission(user.PermissionWalletViewOwn)).Get("/wallet", walletHandler.Statement)
				r.With(middleware.RequireAdmin, middleware.RequirePermission(user.PermissionWalletMaintain)).Post("/wallet/recompute", walletHandler.Recompute)
			})
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.With(middleware.RequireManager, middleware.RequirePermission(user.PermissionVehicleManage)).Post("/", vehicleHandler.Create)
			r.With(middleware.RequirePermission(user.PermissionVehicleView)).Get("/{id}", vehicleHandler.Get)
		})

		r.Route("/branches", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionBranchView)).Get("/", branchHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionBranchView)).Get("/", branchHandler.Get)
				r.With(middleware.RequirePermission(user.PermissionDriverView)).Get("/drivers", driverHandler.ListByBranch)
				r.With(middleware.RequirePermission(user.PermissionVehicleView)).Get("/vehicles", vehicleHandler.ListByBranch)
				r.With(middleware.RequirePermission(user.PermissionSalaryAssign)).Get("/salary-assignments", salaryHandler.ListAssignments)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDutyViewAll))
					r.Get("/duty/completed", dutyHandler.ListCompleted)
					r.Get("/duty/completed/export", dutyHandler.ExportCompleted)
				})
			})
		})
	})

	return r
}
