package http

import (
	"encoding/json"
	"net/http"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/driver"
	"github.com/fleetdesk/fleet-backend-go/internal/handler/http/middleware"
	"github.com/fleetdesk/fleet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DriverHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListByBranch(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type driverHandlerImpl struct {
	driverService driver.DriverService
	guard         accessGuard
}

func NewDriverHandler(driverService driver.DriverService) DriverHandler {
	return &driverHandlerImpl{
		driverService: driverService,
		guard:         newAccessGuard(driverService),
	}
}

func (h *driverHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req driver.CreateDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if req.BranchID != nil {
		if err := h.guard.branch(actor, *req.BranchID); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	result, err := h.driverService.Create(r.Context(), req, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Driver registered and awaiting approval", result)
}

func (h *driverHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.guard.driver(r.Context(), actor, id); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.driverService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *driverHandlerImpl) ListByBranch(w http.ResponseWriter, r *http.Request) {
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

	var filter driver.ListDriversFilter
	if status := r.URL.Query().Get("status"); status != "" {
		s := driver.Status(status)
		filter.Status = &s
	}

	results, err := h.driverService.ListByBranch(r.Context(), branchID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, results, len(results))
}

func (h *driverHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.driverService.Approve(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Driver approved", result)
}

func (h *driverHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.driverService.Reject(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Driver rejected", result)
}
