package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/preciousgifts/sugar-backend/internal/service"
	"github.com/preciousgifts/sugar-backend/pkg/httputil"
	"github.com/preciousgifts/sugar-backend/pkg/pagination"
)

// LogHandler handles HTTP requests for the persisted log facility.
type LogHandler struct {
	service *service.AuditService
	logger  *slog.Logger
}

// NewLogHandler creates a new log HTTP handler.
func NewLogHandler(svc *service.AuditService, logger *slog.Logger) *LogHandler {
	return &LogHandler{service: svc, logger: logger}
}

// List handles GET /api/v1/utilities/logs (admin). An optional since query
// parameter (RFC 3339) narrows the window; the default is 24 hours back.
func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	since := time.Now().UTC().Add(-24 * time.Hour)
	if v := r.URL.Query().Get("since"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httputil.WriteFailure(w, http.StatusBadRequest, "since must be an RFC 3339 timestamp")
			return
		}
		since = parsed
	}

	result, err := h.service.List(r.Context(), since, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "logs fetched successfully", result)
}
