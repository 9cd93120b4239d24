package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Sushanthnayak-eng/FashionCart/internal/cart"
	"github.com/Sushanthnayak-eng/FashionCart/internal/catalog"
)

type CartHandler struct {
	carts    *cart.Service
	products *catalog.Service
	timeout  time.Duration
}

func NewCartHandler(carts *cart.Service, products *catalog.Service, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:    carts,
		products: products,
		timeout:  timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Delta int `json:"delta"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	identity := identityFromContext(r.Context())

	c, err := h.carts.GetCart(ctx, identity.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}

// AddItem resolves the product from the catalog so the stored line carries
// the full product snapshot, then adds it to the caller's cart.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	identity := identityFromContext(r.Context())

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := h.products.Get(ctx, req.ProductID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	c, err := h.carts.AddToCart(ctx, identity.UserID, *product)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, c)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	identity := identityFromContext(r.Context())
	productID := chi.URLParam(r, "product_id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Delta == 0 {
		respondError(w, http.StatusBadRequest, "invalid_delta", "delta must be non-zero")
		return
	}

	c, err := h.carts.UpdateQuantity(ctx, identity.UserID, productID, req.Delta)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	identity := identityFromContext(r.Context())

	c, err := h.carts.RemoveFromCart(ctx, identity.UserID, chi.URLParam(r, "product_id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	identity := identityFromContext(r.Context())

	if err := h.carts.ClearCart(ctx, identity.UserID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
