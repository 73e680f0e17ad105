package handlers

import (
	"net/http"

	"github.com/baharkarakas/stays-backend/internal/api/httpx"
	"github.com/baharkarakas/stays-backend/internal/api/serializers"
	"github.com/baharkarakas/stays-backend/internal/middleware"
	"github.com/baharkarakas/stays-backend/internal/services"
)

type UserHandler struct {
	Svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler {
	return &UserHandler{Svc: svc}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	us, err := h.Svc.List(r.Context(), httpx.PageFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, serializers.Users(us))
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in serializers.UserInput
	if !bind(w, r, "user", &in) {
		return
	}
	// sign-up is open; an authenticated admin may also create accounts
	who, _ := middleware.Actor(r.Context())
	u, err := h.Svc.Register(r.Context(), who, &in, *in.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, serializers.User(u))
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	u, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, serializers.User(u))
}

// Update serves both PUT and PATCH.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in serializers.UserInput
	if !bind(w, r, "user", &in) {
		return
	}
	u, err := h.Svc.Update(r.Context(), actor(r), id, &in, in.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, serializers.User(u))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Login exchanges email and password for the user's token.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in serializers.LoginInput
	if !httpx.DecodeJSON(w, r, &in) {
		return
	}
	tok, err := h.Svc.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, serializers.TokenOutput{Token: tok})
}
