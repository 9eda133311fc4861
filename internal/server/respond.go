package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/nexusai/nexus-crm/internal/app"
)

type apiErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// apiError is the error envelope every failing route returns.
type apiError struct {
	Body apiErrorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Body: apiErrorBody{Code: code, Message: message}})
}

// handleError maps a use-case error to its status code. Internal failures
// are logged and answered with a generic message.
func (a *api) handleError(w http.ResponseWriter, r *http.Request, err error) {
	code := app.CodeOf(err)
	status := statusForCode(code)
	if status == http.StatusInternalServerError {
		a.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, status, string(code), "internal error")
		return
	}
	var appErr *app.Error
	msg := err.Error()
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	writeError(w, status, string(code), msg)
}

func statusForCode(code app.ErrorCode) int {
	switch code {
	case app.ErrInvalidInput:
		return http.StatusBadRequest
	case app.ErrNotFound:
		return http.StatusNotFound
	case app.ErrReadOnly:
		return http.StatusConflict
	case app.ErrAIDisabled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return app.NewError(app.ErrInvalidInput, fmt.Sprintf("invalid JSON body: %v", err), err)
}
