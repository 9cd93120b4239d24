package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
	"github.com/Sushanthnayak-eng/FashionCart/internal/order"
)

type OrdersHandler struct {
	service *order.Service
	timeout time.Duration
}

func NewOrdersHandler(service *order.Service, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		service: service,
		timeout: timeout,
	}
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	identity := identityFromContext(r.Context())

	orders, err := h.service.ListByUser(ctx, identity.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// GetOrder returns a single order. Non-admin callers only see their own;
// an order belonging to someone else reads as not found rather than
// confirming it exists.
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	identity := identityFromContext(r.Context())

	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a UUID")
		return
	}

	found, err := h.service.Get(ctx, orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if identity.Role != domain.RoleAdmin && found.UserID != identity.UserID {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}

	respondJSON(w, http.StatusOK, found)
}

func (h *OrdersHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.service.ListAll(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a UUID")
		return
	}

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.service.UpdateStatus(ctx, orderID, domain.OrderStatus(req.Status)); err != nil {
		handleServiceError(w, err)
		return
	}

	updated, err := h.service.Get(ctx, orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// WatchOrders streams the full order list to admins over SSE, refreshed on
// every placement and status change.
func (h *OrdersHandler) WatchOrders(w http.ResponseWriter, r *http.Request) {
	initial, feed, cancel, err := h.service.Watch(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	streamSnapshots(w, r, initial, feed, cancel)
}
