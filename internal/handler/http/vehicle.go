package http

import (
	"encoding/json"
	"net/http"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/driver"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/vehicle"
	"github.com/fleetdesk/fleet-backend-go/internal/handler/http/middleware"
	"github.com/fleetdesk/fleet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type VehicleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListByBranch(w http.ResponseWriter, r *http.Request)
}

type vehicleHandlerImpl struct {
	vehicleService vehicle.VehicleService
	guard          accessGuard
}

func NewVehicleHandler(vehicleService vehicle.VehicleService, driverService driver.DriverService) VehicleHandler {
	return &vehicleHandlerImpl{
		vehicleService: vehicleService,
		guard:          newAccessGuard(driverService),
	}
}

func (h *vehicleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req vehicle.CreateVehicleRequest
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

	result, err := h.vehicleService.Create(r.Context(), req, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Vehicle added", result)
}

func (h *vehicleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.vehicleService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.guard.branch(actor, result.BranchID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *vehicleHandlerImpl) ListByBranch(w http.ResponseWriter, r *http.Request) {
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

	results, err := h.vehicleService.ListByBranch(r.Context(), branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, results, len(results))
}
