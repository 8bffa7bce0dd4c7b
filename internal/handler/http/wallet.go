package http

import (
	"encoding/json"
	"net/http"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/driver"
	"github.com/fleetdesk/fleet-backend-go/internal/domain/wallet"
	"github.com/fleetdesk/fleet-backend-go/internal/handler/http/middleware"
	"github.com/fleetdesk/fleet-backend-go/internal/handler/http/response"
	"github.com/fleetdesk/fleet-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type WalletHandler interface {
	Propose(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	ListApproved(w http.ResponseWriter, r *http.Request)
	Statement(w http.ResponseWriter, r *http.Request)
	Recompute(w http.ResponseWriter, r *http.Request)
}

type walletHandlerImpl struct {
	walletService wallet.WalletService
	guard         accessGuard
}

func NewWalletHandler(walletService wallet.WalletService, driverService driver.DriverService) WalletHandler {
	return &walletHandlerImpl{
		walletService: walletService,
		guard:         newAccessGuard(driverService),
	}
}

func (h *walletHandlerImpl) Propose(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req wallet.ProposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if !validator.IsEmpty(req.DriverID) {
		if err := h.guard.driver(r.Context(), actor, req.DriverID); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	result, err := h.walletService.Propose(r.Context(), req, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Wallet transaction submitted for approval", result)
}

func (h *walletHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	outcome := wallet.Outcome(chi.URLParam(r, "outcome"))

	result, err := h.walletService.Resolve(r.Context(), id, outcome, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Wallet transaction "+string(result.Status), result)
}

func (h *walletHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.walletService.Get(r.Context(), chi.URLParam(r, "id"))
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

func (h *walletHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	branchID, err := h.guard.branchScope(r, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.walletService.ListPending(r.Context(), branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, results, len(results))
}

func (h *walletHandlerImpl) ListApproved(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	branchID, err := h.guard.branchScope(r, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	groupBy := r.URL.Query().Get("group_by")
	if !validator.IsInSlice(groupBy, []string{"", "kind"}) {
		response.HandleError(w, validator.ValidationErrors{{
			Field:   "group_by",
			Message: "group_by must be kind",
		}})
		return
	}

	result, err := h.walletService.ListApproved(r.Context(), branchID, groupBy == "kind")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *walletHandlerImpl) Statement(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.walletService.DriverStatement(r.Context(), driverID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *walletHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	result, err := h.walletService.RecomputeBalance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
