package http

import (
	"net/http"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/service"
)

type SettingsHandler struct {
	settingsSvc service.SettingsService
}

func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsSvc.Get(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.SettingsPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, err)
		return
	}

	settings, err := h.settingsSvc.Update(r.Context(), patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, settings)
}

func (h *SettingsHandler) RegenerateAPIKey(w http.ResponseWriter, r *http.Request) {
	key, err := h.settingsSvc.RegenerateAPIKey(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"api_key": key})
}
