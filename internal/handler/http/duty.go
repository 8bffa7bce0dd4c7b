package http

import (
	"encoding/json"
	"net/http"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/driver"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/duty"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/user"
	"github.com/fleetdesk/fleet-backend-go/internal/handler/http/middleware"
	"github.com/fleetdesk/fleet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DutyHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	End(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetActive(w http.ResponseWriter, r *http.Request)
	ListCompleted(w http.ResponseWriter, r *http.Request)
	ExportCompleted(w http.ResponseWriter, r *http.Request)
}

type dutyHandlerImpl struct {
	dutyService duty.DutyService
	guard       accessGuard
}

func NewDutyHandler(dutyService duty.DutyService, driverService driver.DriverService) DutyHandler {
	return &dutyHandlerImpl{
		dutyService: dutyService,
		guard:       newAccessGuard(driverService),
	}
}

func (h *dutyHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req duty.StartDutyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Drivers start their own duty; omit driver_id to mean "me".
	if actor.Role == user.RoleDriver && req.DriverID == "" {
		req.DriverID = actor.ID
	}
	if req.DriverID != "" {
		if err := h.guard.driver(r.Context(), actor, req.DriverID); err != nil {
			response.HandleError(w, err)
			return
		}
	}
	if actor.Role == user.RoleManager && req.BranchID != "" {
		if err := h.guard.branch(actor, req.BranchID); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	result, err := h.dutyService.StartDuty(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Duty started successfully", result)
}

func (h *dutyHandlerImpl) End(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req duty.EndDutyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.SessionID = chi.URLParam(r, "id")

	session, err := h.dutyService.Get(r.Context(), req.SessionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if err := h.guard.driver(r.Context(), actor, session.DriverID); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dutyService.EndDuty(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Duty ended successfully", result)
}

func (h *dutyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dutyService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if err := h.guard.driver(r.Context(), actor, result.DriverID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *dutyHandlerImpl) GetActive(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.dutyService.GetActive(r.Context(), driverID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if result == nil {
		response.SuccessWithMessage(w, "Driver is off duty", nil)
		return
	}

	response.Success(w, result)
}

func (h *dutyHandlerImpl) ListCompleted(w http.ResponseWriter, r *http.Request) {
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

	results, err := h.dutyService.ListCompleted(r.Context(), branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, results, len(results))
}

func (h *dutyHandlerImpl) ExportCompleted(w http.ResponseWriter, r *http.Request) {
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

	buf, filename, err := h.dutyService.ExportCompleted(r.Context(), branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, xlsxContentType, filename, buf.Bytes())
}
