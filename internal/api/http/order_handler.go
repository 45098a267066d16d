package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/service"
	"medishare-backend/internal/storage"
)

type OrderHandler struct {
	orderSvc  service.OrderService
	artifacts storage.ArtifactStore
}

func NewOrderHandler(orderSvc service.OrderService, artifacts storage.ArtifactStore) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc, artifacts: artifacts}
}

// Checkout accepts a multipart form with an "order" JSON part and an optional
// "payment_proof" file. A plain JSON body works too, for methods that need no
// proof.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutRequest

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			respondError(w, r, domain.NewValidationError("body", "invalid multipart form"))
			return
		}
		if err := json.Unmarshal([]byte(r.FormValue("order")), &req); err != nil {
			respondError(w, r, domain.NewValidationError("order", "invalid order JSON"))
			return
		}
		reference, err := h.savePaymentProof(r)
		if err != nil {
			respondError(w, r, err)
			return
		}
		if reference != "" {
			req.PaymentProof = reference
		}
	} else if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	// Guest checkout is allowed; the renter id is attached only when a
	// valid token came with the request.
	var renterID *int32
	if claims, ok := claimsFromContext(r.Context()); ok {
		renterID = &claims.UserID
	}

	orders, err := h.orderSvc.Checkout(r.Context(), renterID, req)
	if err != nil {
		// A conflict after some orders committed still reports the
		// survivors alongside the error.
		var conflictErr *domain.ConflictError
		if errors.As(err, &conflictErr) && len(orders) > 0 {
			respondJSON(w, http.StatusConflict, response{
				Success: false,
				Message: conflictErr.Error(),
				Data:    orders,
			})
			return
		}
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	order, err := h.orderSvc.Get(r.Context(), claims.UserID, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, order)
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	orders, err := h.orderSvc.ListForRenter(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, orders)
}

func (h *OrderHandler) ListReceived(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	orders, err := h.orderSvc.ListForOwner(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, orders)
}

type statusUpdateRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req statusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	order, err := h.orderSvc.UpdateStatus(r.Context(), claims.UserID, id, req.Status)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, order)
}

func (h *OrderHandler) savePaymentProof(r *http.Request) (string, error) {
	file, header, err := r.FormFile("payment_proof")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", domain.NewValidationError("payment_proof", "invalid file upload")
	}
	defer file.Close()
	return h.artifacts.Save(r.Context(), header.Filename, file)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}
