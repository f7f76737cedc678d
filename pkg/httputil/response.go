package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/wakil120/ShopReview/pkg/errors"
	"github.com/wakil120/ShopReview/pkg/logger"
	"github.com/wakil120/ShopReview/pkg/validator"
)

// ErrorBody is the error response contract consumed by the website and
// browser extension: a single human-readable message.
type ErrorBody struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes a `{"message": ...}` body with the given status.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorBody{Message: message})
}

// WriteError maps err to an HTTP status and writes the `{"message": ...}`
// error body. AppError messages pass through to the client; anything
// unrecognized becomes a generic 500 with the detail logged. It prefers
// the request-scoped logger over the fallback.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status == http.StatusInternalServerError {
			logInternal(r, l, err)
		}
		WriteMessage(w, appErr.Status, appErr.Message)
		return
	}

	status := apperrors.HTTPStatus(err)
	message := "an internal error occurred"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		message = "resource not found"
	case errors.Is(err, apperrors.ErrInvalidInput):
		message = err.Error()
	case errors.Is(err, apperrors.ErrAlreadyExists):
		message = "resource already exists"
	default:
		logInternal(r, l, err)
	}

	WriteMessage(w, status, message)
}

// WriteValidationError writes a 400 response for request DTO validation
// failures.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteMessage(w, http.StatusBadRequest, valErr.Error())
		return
	}
	WriteMessage(w, http.StatusBadRequest, err.Error())
}

func logInternal(r *http.Request, l *slog.Logger, err error) {
	l.ErrorContext(r.Context(), "internal error",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)
}
