package http

import (
	"net/http"

	"medishare-backend/internal/service"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	user, err := h.userSvc.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, user)
}

func (h *UserHandler) Membership(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	user, err := h.userSvc.GetMembership(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, user)
}
