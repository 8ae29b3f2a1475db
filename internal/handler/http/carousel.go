package http

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/preciousgifts/sugar-backend/internal/service"
	"github.com/preciousgifts/sugar-backend/internal/storage"
	"github.com/preciousgifts/sugar-backend/pkg/httputil"
	"github.com/preciousgifts/sugar-backend/pkg/validator"
)

// maxCarouselUploadBytes bounds a carousel multipart body. Videos are
// larger than images.
const maxCarouselUploadBytes = 100 << 20 // 100MB

// Multipart parse errors shared by the upload handlers.
var (
	errMultipartExpected  = errors.New("expected multipart/form-data body")
	errMultipartMalformed = errors.New("malformed multipart body")
	errMultipartOneFile   = errors.New("exactly one file part is expected")
)

// CarouselHandler handles HTTP requests for carousel, video and marquee
// endpoints.
type CarouselHandler struct {
	service *service.CarouselService
	logger  *slog.Logger
}

// NewCarouselHandler creates a new carousel HTTP handler.
func NewCarouselHandler(svc *service.CarouselService, logger *slog.Logger) *CarouselHandler {
	return &CarouselHandler{service: svc, logger: logger}
}

// CreateMarqueeRequest is the JSON request body for creating a marquee.
type CreateMarqueeRequest struct {
	Text string `json:"text" validate:"required,max=300"`
}

// CreateImage handles POST /api/v1/utilities/carousel (admin, multipart).
func (h *CarouselHandler) CreateImage(w http.ResponseWriter, r *http.Request) {
	upload, fields, err := h.readUpload(w, r)
	if err != nil {
		httputil.WriteFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	if upload == nil {
		httputil.WriteFailure(w, http.StatusBadRequest, "a carousel image file is required")
		return
	}

	input := service.CreateCarouselImageInput{
		Title:     fields["title"],
		Placement: fields["placement"],
		TargetURL: fields["target_url"],
		Image:     *upload,
	}
	if v := fields["position"]; v != "" {
		if pos, err := strconv.Atoi(v); err == nil {
			input.Position = pos
		}
	}

	img, err := h.service.CreateImage(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "carousel image created successfully", img)
}

// ListImages handles GET /api/v1/utilities/carousel
func (h *CarouselHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.ListImages(r.Context(), r.URL.Query().Get("placement"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "carousel images fetched successfully", images)
}

// CreateVideo handles POST /api/v1/utilities/carousel-video (admin, multipart).
func (h *CarouselHandler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	upload, fields, err := h.readUpload(w, r)
	if err != nil {
		httputil.WriteFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	if upload == nil {
		httputil.WriteFailure(w, http.StatusBadRequest, "a carousel video file is required")
		return
	}

	input := service.CreateCarouselVideoInput{
		Title:     fields["title"],
		Placement: fields["placement"],
		Video:     *upload,
	}
	if v := fields["position"]; v != "" {
		if pos, err := strconv.Atoi(v); err == nil {
			input.Position = pos
		}
	}

	vid, err := h.service.CreateVideo(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "carousel video created successfully", vid)
}

// ListVideos handles GET /api/v1/utilities/carousel-video
func (h *CarouselHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.service.ListVideos(r.Context(), r.URL.Query().Get("placement"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "carousel videos fetched successfully", videos)
}

// CreateMarquee handles POST /api/v1/utilities/marquee (admin).
func (h *CarouselHandler) CreateMarquee(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateMarqueeRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	m, err := h.service.CreateMarquee(r.Context(), req.Text)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "marquee created successfully", m)
}

// ListMarquees handles GET /api/v1/utilities/marquee
func (h *CarouselHandler) ListMarquees(w http.ResponseWriter, r *http.Request) {
	marquees, err := h.service.ListMarquees(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "marquees fetched successfully", marquees)
}

// readUpload parses a multipart body carrying text fields and at most one
// file part. The file is buffered in memory; nothing touches local disk.
func (h *CarouselHandler) readUpload(w http.ResponseWriter, r *http.Request) (*storage.UploadInput, map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCarouselUploadBytes)

	reader, err := r.MultipartReader()
	if err != nil {
		return nil, nil, errMultipartExpected
	}

	fields := map[string]string{}
	var upload *storage.UploadInput

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errMultipartMalformed
		}

		if part.FileName() == "" {
			value, err := io.ReadAll(io.LimitReader(part, 4096))
			if err != nil {
				return nil, nil, errMultipartMalformed
			}
			fields[part.FormName()] = strings.TrimSpace(string(value))
			continue
		}

		if upload != nil {
			return nil, nil, errMultipartOneFile
		}

		var buf bytes.Buffer
		if _, err := io.Copy(&buf, part); err != nil {
			return nil, nil, errMultipartMalformed
		}
		upload = &storage.UploadInput{
			Filename:    part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
			Data:        &buf,
		}
	}

	return upload, fields, nil
}
