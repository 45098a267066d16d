package http

import (
	"net/http"

	"medishare-backend/internal/service"
)

type DashboardHandler struct {
	dashboardSvc service.DashboardService
	userSvc      service.UserService
}

func NewDashboardHandler(dashboardSvc service.DashboardService, userSvc service.UserService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc, userSvc: userSvc}
}

func (h *DashboardHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardSvc.AdminStats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, stats)
}

func (h *DashboardHandler) OwnerStats(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	stats, err := h.userSvc.OwnerStats(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, stats)
}
