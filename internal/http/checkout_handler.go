package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/Sushanthnayak-eng/FashionCart/internal/cart"
	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
	"github.com/Sushanthnayak-eng/FashionCart/internal/order"
)

type CheckoutHandler struct {
	orders  *order.Service
	carts   *cart.Service
	timeout time.Duration
}

func NewCheckoutHandler(orders *order.Service, carts *cart.Service, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		orders:  orders,
		carts:   carts,
		timeout: timeout,
	}
}

type CheckoutRequestDTO struct {
	Address domain.Address `json:"address"`
}

// Checkout submits the caller's current cart as an order. The cart is
// cleared only after the order is durably created; any failure leaves it
// untouched so the submission can be retried as-is.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	identity := identityFromContext(r.Context())

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	c, err := h.carts.GetCart(ctx, identity.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	placed, err := h.orders.PlaceOrder(ctx, order.PlaceOrderInput{
		UserID:         identity.UserID,
		UserEmail:      identity.Email,
		Lines:          c.Lines,
		Address:        req.Address,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// The order exists either way; a failed clear only leaves stale cart
	// lines behind, it must not fail the checkout.
	if err := h.carts.ClearCart(ctx, identity.UserID); err != nil {
		log.Printf("failed to clear cart after checkout %s: %v (request_id=%s)", placed.ID, err, getRequestID(r.Context()))
	}

	respondJSON(w, http.StatusCreated, placed)
}
