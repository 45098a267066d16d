package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/service"
	"medishare-backend/internal/storage"
)

// maxUploadBytes caps multipart uploads (images, payment proofs).
const maxUploadBytes = 10 << 20

type EquipmentHandler struct {
	equipmentSvc service.EquipmentService
	artifacts    storage.ArtifactStore
}

func NewEquipmentHandler(equipmentSvc service.EquipmentService, artifacts storage.ArtifactStore) *EquipmentHandler {
	return &EquipmentHandler{equipmentSvc: equipmentSvc, artifacts: artifacts}
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return int32(id), nil
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	equipment, err := h.equipmentSvc.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, equipment)
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	eq, err := h.equipmentSvc.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	equipment, err := h.equipmentSvc.ListByOwner(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, equipment)
}

// Create accepts a multipart form: listing fields plus an optional image.
func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, r, domain.NewValidationError("body", "invalid multipart form"))
		return
	}

	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	eq := &domain.Equipment{
		OwnerID:      claims.UserID,
		Name:         r.FormValue("name"),
		Description:  r.FormValue("description"),
		Category:     r.FormValue("category"),
		Price:        price,
		RentalPeriod: domain.RentalPeriod(r.FormValue("rental_period")),
		Condition:    r.FormValue("condition"),
		Location:     r.FormValue("location"),
	}

	if reference, err := h.saveUpload(r, "image"); err != nil {
		respondError(w, r, err)
		return
	} else if reference != "" {
		eq.Image = reference
	}

	if err := h.equipmentSvc.Create(r.Context(), eq); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, eq)
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, r, domain.NewValidationError("body", "invalid multipart form"))
		return
	}

	patch := equipmentPatchFromForm(r)
	if reference, err := h.saveUpload(r, "image"); err != nil {
		respondError(w, r, err)
		return
	} else if reference != "" {
		patch.Image = &reference
	}

	eq, err := h.equipmentSvc.Update(r.Context(), claims.UserID, id, patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.equipmentSvc.Delete(r.Context(), claims.UserID, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "equipment deleted")
}

// saveUpload stores the named multipart file if present and returns its
// reference, or "" when the field was omitted.
func (h *EquipmentHandler) saveUpload(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", domain.NewValidationError(field, "invalid file upload")
	}
	defer file.Close()
	return h.artifacts.Save(r.Context(), header.Filename, file)
}

func equipmentPatchFromForm(r *http.Request) domain.EquipmentPatch {
	var patch domain.EquipmentPatch
	if v := r.FormValue("name"); v != "" {
		patch.Name = &v
	}
	if v := r.FormValue("description"); v != "" {
		patch.Description = &v
	}
	if v := r.FormValue("category"); v != "" {
		patch.Category = &v
	}
	if v := r.FormValue("price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			patch.Price = &price
		}
	}
	if v := r.FormValue("rental_period"); v != "" {
		period := domain.RentalPeriod(v)
		patch.RentalPeriod = &period
	}
	if v := r.FormValue("condition"); v != "" {
		patch.Condition = &v
	}
	if v := r.FormValue("location"); v != "" {
		patch.Location = &v
	}
	if v := r.FormValue("status"); v != "" {
		status := domain.ListingStatus(v)
		patch.Status = &status
	}
	return patch
}
