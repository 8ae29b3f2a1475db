package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/preciousgifts/sugar-backend/pkg/errors"
	"github.com/preciousgifts/sugar-backend/pkg/logger"
	"github.com/preciousgifts/sugar-backend/pkg/validator"
)

// Response is the uniform JSON envelope returned by every endpoint.
// The HTTP status code conveys the outcome category; Success mirrors it
// for clients that only inspect the body.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a success envelope with the given message and data.
func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, Response{Success: true, Message: message, Data: data})
}

// WriteFailure writes a failure envelope with the given message and no detail.
func WriteFailure(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{Success: false, Message: message})
}

// WriteError translates an error into the failure envelope. AppError carries
// its own status and message; sentinel errors map through apperrors.HTTPStatus;
// anything else is a 500 with a generic message and the detail logged, never
// leaked to the caller. It prefers the request-scoped logger from context over
// the fallback logger.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		WriteJSON(w, appErr.Status, Response{Success: false, Message: appErr.Message})
		return
	}

	status := apperrors.HTTPStatus(err)
	message := "an internal error occurred"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		message = "resource not found"
	case errors.Is(err, apperrors.ErrAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		message = "resource already exists"
	case errors.Is(err, apperrors.ErrInvalidInput):
		message = err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		message = err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		message = err.Error()
	}

	if status == http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		WriteJSON(w, status, Response{
			Success: false,
			Message: message,
			Error:   "unexpected server error",
		})
		return
	}

	WriteJSON(w, status, Response{Success: false, Message: message})
}

// WriteValidationError writes a 400 failure envelope for a request-validation
// error, flattening field-level messages into the message text.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Message: "request validation failed",
			Error:   valErr.Error(),
		})
		return
	}

	WriteJSON(w, http.StatusBadRequest, Response{Success: false, Message: err.Error()})
}
