package http

import (
	"net/http"

	"medishare-backend/internal/service"
)

type ChatHandler struct {
	chatSvc service.ChatService
}

func NewChatHandler(chatSvc service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

type sendMessageRequest struct {
	ReceiverID int32  `json:"receiver_id"`
	Content    string `json:"content"`
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	msg, err := h.chatSvc.Send(r.Context(), claims.UserID, req.ReceiverID, req.Content)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, msg)
}

func (h *ChatHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	otherID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	messages, err := h.chatSvc.GetConversation(r.Context(), claims.UserID, otherID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, messages)
}

func (h *ChatHandler) Partners(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	partners, err := h.chatSvc.ListPartners(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, partners)
}
