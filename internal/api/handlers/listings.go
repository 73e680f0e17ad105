package handlers

import (
	"net/http"

	"github.com/baharkarakas/stays-backend/internal/api/httpx"
	"github.com/baharkarakas/stays-backend/internal/api/serializers"
	"github.com/baharkarakas/stays-backend/internal/services"
)

// ListingHandler serves /listings for hosts.
type ListingHandler struct {
	Svc *services.ListingService
}

func NewListingHandler(svc *services.ListingService) *ListingHandler {
	return &ListingHandler{Svc: svc}
}

func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	ls, err := h.Svc.List(r.Context(), actor(r), httpx.PageFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, serializers.Listings(ls))
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in serializers.ListingInput
	if !bind(w, r, "listing", &in) {
		return
	}
	l, err := h.Svc.Create(r.Context(), actor(r), &in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, serializers.Listing(l))
}

func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	l, err := h.Svc.Get(r.Context(), actor(r), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, serializers.Listing(l))
}

func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in serializers.ListingInput
	if !bind(w, r, "listing", &in) {
		return
	}
	l, err := h.Svc.Update(r.Context(), actor(r), id, &in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, serializers.Listing(l))
}

func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
