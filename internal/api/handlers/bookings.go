package handlers

import (
	"net/http"

	"github.com/baharkarakas/stays-backend/internal/api/httpx"
	"github.com/baharkarakas/stays-backend/internal/api/serializers"
	"github.com/baharkarakas/stays-backend/internal/services"
)

// BookingHandler serves /bookings for guests.
type BookingHandler struct {
	Svc *services.BookingService
}

func NewBookingHandler(svc *services.BookingService) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	bs, err := h.Svc.List(r.Context(), actor(r), httpx.PageFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, serializers.Bookings(bs))
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in serializers.BookingInput
	if !bind(w, r, "booking", &in) {
		return
	}
	b, err := h.Svc.Create(r.Context(), actor(r), &in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, serializers.Booking(b))
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	b, err := h.Svc.Get(r.Context(), actor(r), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, serializers.Booking(b))
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in serializers.BookingInput
	if !bind(w, r, "booking", &in) {
		return
	}
	b, err := h.Svc.Update(r.Context(), actor(r), id, &in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, serializers.Booking(b))
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	b, err := h.Svc.Cancel(r.Context(), actor(r), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, serializers.Booking(b))
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
