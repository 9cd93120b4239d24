package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Sushanthnayak-eng/FashionCart/internal/catalog"
	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
	"github.com/Sushanthnayak-eng/FashionCart/internal/objectstore"
)

const maxImageSize = 5 << 20 // 5MB

type ProductHandler struct {
	service *catalog.Service
	images  objectstore.Store
	timeout time.Duration
}

func NewProductHandler(service *catalog.Service, images objectstore.Store, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		service: service,
		images:  images,
		timeout: timeout,
	}
}

type ProductRequestDTO struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	Category    string `json:"category"`
	AgeGroup    string `json:"age_group"`
	ImageURL    string `json:"image_url"`
}

func (dto ProductRequestDTO) toDomain() domain.Product {
	return domain.Product{
		Name:        dto.Name,
		Price:       dto.Price,
		Description: dto.Description,
		Category:    domain.Category(dto.Category),
		AgeGroup:    domain.AgeGroup(dto.AgeGroup),
		ImageURL:    dto.ImageURL,
	}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	filter := catalog.Filter{
		SearchTerm: r.URL.Query().Get("search"),
		Category:   r.URL.Query().Get("category"),
		AgeGroup:   r.URL.Query().Get("age_group"),
	}

	products, err := h.service.Search(ctx, filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.service.Get(ctx, chi.URLParam(r, "product_id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// WatchProducts streams catalog snapshots over SSE. Every admin mutation
// produces a fresh full snapshot on the stream.
func (h *ProductHandler) WatchProducts(w http.ResponseWriter, r *http.Request) {
	initial, feed, cancel, err := h.service.Watch(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	streamSnapshots(w, r, initial, feed, cancel)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	product := req.toDomain()
	if err := h.service.AddProduct(ctx, &product); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	product := req.toDomain()
	product.ID = chi.URLParam(r, "product_id")

	if err := h.service.UpdateProduct(ctx, &product); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.service.DeleteProduct(ctx, chi.URLParam(r, "product_id")); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadImage accepts a multipart image, stores it, and points the product
// at the stored URL.
func (h *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")

	product, err := h.service.Get(ctx, productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "multipart field 'image' is required")
		return
	}
	defer file.Close()

	url, err := h.images.Upload(ctx, header.Filename, file)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	product.ImageURL = url
	if err := h.service.UpdateProduct(ctx, product); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}
