package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Sushanthnayak-eng/FashionCart/internal/auth"
	"github.com/Sushanthnayak-eng/FashionCart/internal/catalog"
	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
	"github.com/Sushanthnayak-eng/FashionCart/internal/order"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps service sentinel errors to HTTP responses.
// Anything unrecognized is a 500 with no internal detail leaked.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, catalog.ErrInvalidProduct),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, domain.ErrIncompleteAddress),
		errors.Is(err, auth.ErrInvalidSignUp):
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, auth.ErrEmailTaken):
		respondError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrNotAdmin):
		respondError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
