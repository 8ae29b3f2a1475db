package http

import (
	"net/http"
	"strings"

	"github.com/preciousgifts/sugar-backend/internal/service"
	"github.com/preciousgifts/sugar-backend/pkg/middleware"
)

// auditWriter captures the response status for the audit trail.
type auditWriter struct {
	http.ResponseWriter
	status int
}

func (w *auditWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// AuditTrail records every mutating request to the persisted log facility.
// Recording is best effort and gated by the audit service's configuration,
// so the middleware never affects the response.
func AuditTrail(audit *service.AuditService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			default:
				next.ServeHTTP(w, r)
				return
			}

			aw := &auditWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(aw, r)

			level := "info"
			switch {
			case aw.status >= 500:
				level = "error"
			case aw.status >= 400:
				level = "warn"
			}

			fields := map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
				"status": aw.status,
			}
			if userID := middleware.UserIDFromContext(r.Context()); userID != 0 {
				fields["user_id"] = userID
			}

			audit.Record(r.Context(), level, auditModule(r.URL.Path), r.Method+" "+r.URL.Path, fields)
		})
	}
}

// auditModule derives the module name from the request path, e.g.
// /api/v1/ratings/4 -> ratings.
func auditModule(path string) string {
	trimmed := strings.TrimPrefix(path, "/api/v1/")
	if i := strings.IndexByte(trimmed, '/'); i > 0 {
		return trimmed[:i]
	}
	if trimmed == "" {
		return "root"
	}
	return trimmed
}
