package http

import (
	"encoding/json"
	"net/http"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/scheme"
	"github.com/fleetdesk/fleet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SchemeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Replace(w http.ResponseWriter, r *http.Request)
}

type schemeHandlerImpl struct {
	schemeService scheme.SchemeService
}

func NewSchemeHandler(schemeService scheme.SchemeService) SchemeHandler {
	return &schemeHandlerImpl{
		schemeService: schemeService,
	}
}

func (h *schemeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.schemeService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, results, len(results))
}

func (h *schemeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	result, err := h.schemeService.Get(r.Context(), name)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *schemeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req scheme.SchemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.schemeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary scheme created successfully", result)
}

func (h *schemeHandlerImpl) Replace(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req scheme.SchemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.schemeService.Replace(r.Context(), name, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary scheme updated successfully", result)
}
