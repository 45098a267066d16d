package http

import (
	"net/http"

	"medishare-backend/internal/service"
)

type NewsletterHandler struct {
	newsletterSvc service.NewsletterService
}

func NewNewsletterHandler(newsletterSvc service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterSvc: newsletterSvc}
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.newsletterSvc.Subscribe(r.Context(), req.Email); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusCreated, "subscribed to the newsletter")
}

func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.newsletterSvc.Unsubscribe(r.Context(), req.Email); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "unsubscribed from the newsletter")
}
