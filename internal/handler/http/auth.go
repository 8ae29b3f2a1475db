// Package http exposes the storefront API over chi.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/preciousgifts/sugar-backend/internal/service"
	"github.com/preciousgifts/sugar-backend/pkg/httputil"
	"github.com/preciousgifts/sugar-backend/pkg/validator"
)

// AuthHandler handles HTTP requests for auth endpoints.
type AuthHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, logger: logger}
}

// LoginResponse wraps the user data with the issued access token.
type LoginResponse struct {
	User  any    `json:"user"`
	Token string `json:"token"`
}

// SignUp handles POST /api/v1/auth/sign-up
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req service.RegisterInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "user registered successfully", user)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req service.LoginInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	user, token, err := h.service.Login(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "login successful", LoginResponse{
		User:  user,
		Token: token,
	})
}

// writeDecodeError distinguishes validation failures from malformed bodies.
func writeDecodeError(w http.ResponseWriter, err error) {
	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		httputil.WriteValidationError(w, err)
		return
	}
	httputil.WriteFailure(w, http.StatusBadRequest, "invalid request body: "+err.Error())
}
