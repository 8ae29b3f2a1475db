package http

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/preciousgifts/sugar-backend/internal/domain"
	"github.com/preciousgifts/sugar-backend/internal/service"
	"github.com/preciousgifts/sugar-backend/internal/storage"
	apperrors "github.com/preciousgifts/sugar-backend/pkg/errors"
	"github.com/preciousgifts/sugar-backend/pkg/httputil"
	"github.com/preciousgifts/sugar-backend/pkg/middleware"
	"github.com/preciousgifts/sugar-backend/pkg/pagination"
)

// maxProductUploadBytes bounds a product-creation multipart body.
const maxProductUploadBytes = 20 << 20 // 20MB

// ProductHandler handles HTTP requests for catalog endpoints.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{service: svc, logger: logger}
}

// Create handles POST /api/v1/products (admin, multipart/form-data).
// File parts are held in memory until the store upload; nothing is spooled
// to local disk.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxProductUploadBytes)

	reader, err := r.MultipartReader()
	if err != nil {
		httputil.WriteFailure(w, http.StatusBadRequest, "expected multipart/form-data body")
		return
	}

	input := service.CreateProductInput{CreatedBy: middleware.UserIDFromContext(r.Context())}
	fields := map[string]string{}

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			httputil.WriteFailure(w, http.StatusBadRequest, "malformed multipart body")
			return
		}

		if part.FileName() == "" {
			value, err := io.ReadAll(io.LimitReader(part, 4096))
			if err != nil {
				httputil.WriteFailure(w, http.StatusBadRequest, "malformed multipart field")
				return
			}
			fields[part.FormName()] = strings.TrimSpace(string(value))
			continue
		}

		if len(input.Images) == 2 {
			httputil.WriteFailure(w, http.StatusBadRequest, "a product carries at most two images")
			return
		}

		var buf bytes.Buffer
		if _, err := io.Copy(&buf, part); err != nil {
			httputil.WriteFailure(w, http.StatusBadRequest, "failed to read image part")
			return
		}
		input.Images = append(input.Images, storage.UploadInput{
			Filename:    part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
			Data:        &buf,
		})
	}

	if err := applyProductFields(&input, fields); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "product created successfully", product)
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		h.listWith(w, r, func(ctx context.Context, p pagination.Params) (pagination.Result[domain.Product], error) {
			return h.service.ByCategory(ctx, category, p)
		}, "products fetched successfully")
		return
	}

	h.listWith(w, r, h.service.List, "products fetched successfully")
}

// GetByID handles GET /api/v1/products/{id}
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteFailure(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "product fetched successfully", product)
}

// NewArrivals handles GET /api/v1/products/new-arrivals
func (h *ProductHandler) NewArrivals(w http.ResponseWriter, r *http.Request) {
	h.listWith(w, r, h.service.NewArrivals, "new arrival products fetched successfully")
}

// Featured handles GET /api/v1/products/featured
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	h.listWith(w, r, h.service.Featured, "featured products fetched successfully")
}

// FestiveSpecial handles GET /api/v1/products/festive-special
func (h *ProductHandler) FestiveSpecial(w http.ResponseWriter, r *http.Request) {
	h.listWith(w, r, h.service.FestiveSpecial, "festive special products fetched successfully")
}

// Gifting handles GET /api/v1/products/gifting
func (h *ProductHandler) Gifting(w http.ResponseWriter, r *http.Request) {
	h.listWith(w, r, h.service.Gifting, "gifting products fetched successfully")
}

// BestSellers handles GET /api/v1/products/best-sellers
func (h *ProductHandler) BestSellers(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.BestSellers(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "best seller products fetched successfully", products)
}

func (h *ProductHandler) listWith(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(context.Context, pagination.Params) (pagination.Result[domain.Product], error),
	message string,
) {
	result, err := fetch(r.Context(), pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, message, result)
}

// applyProductFields converts the multipart text fields to the create input.
func applyProductFields(input *service.CreateProductInput, fields map[string]string) error {
	input.Name = fields["name"]
	input.Discount = fields["discount"]
	input.Category = fields["category"]
	input.SubCategory = fields["sub_category"]
	input.SubSubCategory = fields["sub_sub_category"]

	if v := fields["current_price"]; v != "" {
		price, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return apperrors.InvalidInput("current_price must be an integer amount in minor units")
		}
		input.CurrentPrice = price
	}
	if v := fields["original_price"]; v != "" {
		price, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return apperrors.InvalidInput("original_price must be an integer amount in minor units")
		}
		input.OriginalPrice = &price
	}
	if v := fields["total_quantity"]; v != "" {
		qty, err := strconv.Atoi(v)
		if err != nil || qty < 0 {
			return apperrors.InvalidInput("total_quantity must be a non-negative integer")
		}
		input.TotalQuantity = qty
	}
	if v := fields["colors"]; v != "" {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				input.Colors = append(input.Colors, c)
			}
		}
	}

	input.Featured = parseBoolField(fields["featured"])
	input.FestiveSpecial = parseBoolField(fields["festive_special"])
	input.Gifting = parseBoolField(fields["gifting"])

	return nil
}

func parseBoolField(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
