package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preciousgifts/sugar-backend/internal/service"
	"github.com/preciousgifts/sugar-backend/pkg/httputil"
	"github.com/preciousgifts/sugar-backend/pkg/middleware"
	"github.com/preciousgifts/sugar-backend/pkg/pagination"
	"github.com/preciousgifts/sugar-backend/pkg/validator"
)

// RatingHandler handles HTTP requests for rating endpoints.
type RatingHandler struct {
	service *service.RatingService
	logger  *slog.Logger
}

// NewRatingHandler creates a new rating HTTP handler.
func NewRatingHandler(svc *service.RatingService, logger *slog.Logger) *RatingHandler {
	return &RatingHandler{service: svc, logger: logger}
}

// Submit handles POST /api/v1/ratings
func (h *RatingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req service.SubmitRatingInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	rating, err := h.service.Submit(r.Context(), middleware.UserIDFromContext(r.Context()), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "rating submitted successfully", rating)
}

// ListByProduct handles GET /api/v1/products/{productId}/ratings
func (h *RatingHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(chi.URLParam(r, "productId"))
	if err != nil {
		httputil.WriteFailure(w, http.StatusBadRequest, "invalid product id")
		return
	}

	page, err := h.service.ListByProduct(r.Context(), productID, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "ratings fetched successfully", page)
}

// GetOwn handles GET /api/v1/products/{productId}/my-rating
func (h *RatingHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(chi.URLParam(r, "productId"))
	if err != nil {
		httputil.WriteFailure(w, http.StatusBadRequest, "invalid product id")
		return
	}

	rating, err := h.service.GetOwn(r.Context(), productID, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	// Data stays null when the caller has not rated the product.
	httputil.WriteSuccess(w, http.StatusOK, "rating fetched successfully", rating)
}

// Update handles PUT /api/v1/ratings/{ratingId}
func (h *RatingHandler) Update(w http.ResponseWriter, r *http.Request) {
	ratingID, err := parseID(chi.URLParam(r, "ratingId"))
	if err != nil {
		httputil.WriteFailure(w, http.StatusBadRequest, "invalid rating id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req service.UpdateRatingInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	rating, err := h.service.UpdateByID(r.Context(), ratingID, middleware.UserIDFromContext(r.Context()), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "rating updated successfully", rating)
}

// Delete handles DELETE /api/v1/ratings/{ratingId} (soft delete).
func (h *RatingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ratingID, err := parseID(chi.URLParam(r, "ratingId"))
	if err != nil {
		httputil.WriteFailure(w, http.StatusBadRequest, "invalid rating id")
		return
	}

	if err := h.service.SoftDeleteByID(r.Context(), ratingID, middleware.UserIDFromContext(r.Context())); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "rating deleted successfully", nil)
}
