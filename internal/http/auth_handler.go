package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Sushanthnayak-eng/FashionCart/internal/auth"
	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
)

type AuthHandler struct {
	service *auth.Service
	timeout time.Duration
}

func NewAuthHandler(service *auth.Service, timeout time.Duration) *AuthHandler {
	return &AuthHandler{
		service: service,
		timeout: timeout,
	}
}

type SignUpRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type SignInRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponseDTO struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req SignUpRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session, err := h.service.SignUp(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, SessionResponseDTO{Token: session.Token, User: session.User})
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	h.signIn(w, r, h.service.SignIn)
}

func (h *AuthHandler) AdminSignIn(w http.ResponseWriter, r *http.Request) {
	h.signIn(w, r, h.service.AdminSignIn)
}

func (h *AuthHandler) signIn(w http.ResponseWriter, r *http.Request, authenticate func(context.Context, string, string) (*auth.Session, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req SignInRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session, err := authenticate(ctx, req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SessionResponseDTO{Token: session.Token, User: session.User})
}
