package http

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"medishare-backend/internal/storage"
)

// FilesHandler streams stored artifacts (equipment images, payment proofs)
// back to clients.
type FilesHandler struct {
	artifacts storage.ArtifactStore
}

func NewFilesHandler(artifacts storage.ArtifactStore) *FilesHandler {
	return &FilesHandler{artifacts: artifacts}
}

func (h *FilesHandler) Serve(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	reference := "/uploads/" + key

	file, err := h.artifacts.Open(r.Context(), reference)
	if err != nil {
		respondJSON(w, http.StatusNotFound, response{Success: false, Message: "file not found"})
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	case ".pdf":
		contentType = "application/pdf"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.Copy(w, file)
}
