package http

import (
	"encoding/json"
	"net/http"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/driver"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/salary"
	"github.com/fleetdesk/fleet-backend-go/internal/handler/http/middleware"
	"github.com/fleetdesk/fleet-backend-go/internal/handler/http/response"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type SalaryHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	GetAssignment(w http.ResponseWriter, r *http.Request)
	ListAssignments(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
	guard         accessGuard
}

func NewSalaryHandler(salaryService salary.SalaryService, driverService driver.DriverService) SalaryHandler {
	return &salaryHandlerImpl{
		salaryService: salaryService,
		guard:         newAccessGuard(driverService),
	}
}

func (h *salaryHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req salary.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if req.DriverID != nil && !validator.IsEmpty(*req.DriverID) {
		if err := h.guard.driver(r.Context(), actor, *req.DriverID); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	result, err := h.salaryService.Calculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req salary.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.DriverID = chi.URLParam(r, "id")

	if err := h.guard.driver(r.Context(), actor, req.DriverID); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.Assign(r.Context(), req, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary scheme assigned successfully", result)
}

func (h *salaryHandlerImpl) GetAssignment(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	driverID := chi.URLParam(r, "id")

	if err := h.guard.driver(r.Context(), actor, driverID); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.GetAssignment(r.Context(), driverID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) ListAssignments(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	branchID := chi.URLParam(r, "id")

	if err := h.guard.branch(actor, branchID); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.salaryService.ListAssignments(r.Context(), branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, results, len(results))
}
