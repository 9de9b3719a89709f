package http

import (
	"encoding/json"
	"net/http"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/promotion"
	"github.com/beginal/jeongsan-admin-sub000/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PromotionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	Assign(w http.ResponseWriter, r *http.Request)
	ListAssignments(w http.ResponseWriter, r *http.Request)
	RemoveAssignment(w http.ResponseWriter, r *http.Request)
}

type promotionHandlerImpl struct {
	promotionService promotion.PromotionService
}

func NewPromotionHandler(promotionService promotion.PromotionService) PromotionHandler {
	return &promotionHandlerImpl{
		promotionService: promotionService,
	}
}

func (h *promotionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req promotion.CreatePromotionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.promotionService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Promotion created successfully", result)
}

func (h *promotionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.promotionService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *promotionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.promotionService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *promotionHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req promotion.UpdatePromotionRequest
	req.ID = id

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.promotionService.Update(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Promotion updated successfully"})
}

func (h *promotionHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.promotionService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Promotion deleted successfully"})
}

func (h *promotionHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req promotion.AssignPromotionRequest
	req.PromotionID = id

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.promotionService.Assign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Promotion assigned successfully", result)
}

func (h *promotionHandlerImpl) ListAssignments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	results, err := h.promotionService.ListAssignments(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *promotionHandlerImpl) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "assignmentID")

	if err := h.promotionService.RemoveAssignment(r.Context(), assignmentID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Promotion assignment removed successfully"})
}
