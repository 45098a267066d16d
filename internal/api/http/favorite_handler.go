package http

import (
	"net/http"

	"medishare-backend/internal/service"
)

type FavoriteHandler struct {
	favoriteSvc service.FavoriteService
}

func NewFavoriteHandler(favoriteSvc service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteSvc: favoriteSvc}
}

func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	equipmentID, err := pathID(r, "equipmentId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	fav, err := h.favoriteSvc.Add(r.Context(), claims.UserID, equipmentID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, fav)
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	favorites, err := h.favoriteSvc.List(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, favorites)
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	equipmentID, err := pathID(r, "equipmentId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.favoriteSvc.Remove(r.Context(), claims.UserID, equipmentID); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "favorite removed")
}
