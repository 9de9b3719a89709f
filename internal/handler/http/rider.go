package http

import (
	"encoding/json"
	"net/http"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/rider"
	"github.com/beginal/jeongsan-admin-sub000/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RiderHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type riderHandlerImpl struct {
	riderService rider.RiderService
}

func NewRiderHandler(riderService rider.RiderService) RiderHandler {
	return &riderHandlerImpl{
		riderService: riderService,
	}
}

func (h *riderHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req rider.CreateRiderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.riderService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Rider created successfully", result)
}

func (h *riderHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.riderService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *riderHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter rider.RiderFilter
	query := r.URL.Query()
	if v := query.Get("branch_id"); v != "" {
		filter.BranchID = &v
	}
	if v := query.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := query.Get("search"); v != "" {
		filter.Search = &v
	}

	results, err := h.riderService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *riderHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req rider.UpdateRiderRequest
	req.ID = id

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.riderService.Update(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Rider updated successfully"})
}

func (h *riderHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.riderService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Rider deleted successfully"})
}
