package handlers

import (
	"net/http"

	"github.com/baharkarakas/stays-backend/internal/api/httpx"
	"github.com/baharkarakas/stays-backend/internal/api/serializers"
	"github.com/baharkarakas/stays-backend/internal/services"
)

type ReviewHandler struct {
	Svc *services.ReviewService
}

func NewReviewHandler(svc *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{Svc: svc}
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Svc.List(r.Context(), actor(r), httpx.PageFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, serializers.Reviews(rs))
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in serializers.ReviewInput
	if !bind(w, r, "review", &in) {
		return
	}
	rv, err := h.Svc.Create(r.Context(), actor(r), &in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, serializers.Review(rv))
}

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	rv, err := h.Svc.Get(r.Context(), actor(r), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, serializers.Review(rv))
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in serializers.ReviewInput
	if !bind(w, r, "review", &in) {
		return
	}
	rv, err := h.Svc.Update(r.Context(), actor(r), id, &in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, serializers.Review(rv))
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Delete(r.Context(), actor(r), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
