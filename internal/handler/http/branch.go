package http

import (
	"net/http"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/branch"
	"github.com/fleetdesk/fleet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BranchHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type branchHandlerImpl struct {
	branchService branch.BranchService
}

func NewBranchHandler(branchService branch.BranchService) BranchHandler {
	return &branchHandlerImpl{
		branchService: branchService,
	}
}

func (h *branchHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.branchService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, results, len(results))
}

func (h *branchHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.branchService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
