package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ukydev/garage/internal/apperror"
	"github.com/ukydev/garage/internal/logging"
	"github.com/ukydev/garage/internal/validation"
)

const maxBodyBytes = 1 << 20

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeError maps err onto a status and a client-safe message. Server-side
// failures are logged with their cause through the request's log entry.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperror.From(err)
	status := appErr.Status()
	if status >= http.StatusInternalServerError {
		logging.FromContext(r.Context()).
			WithError(err).
			WithField("kind", appErr.Kind.String()).
			Error("request failed")
	}
	writeMessage(w, status, appErr.PublicMessage())
}

// decodeJSON reads a single JSON document into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.Validation("Request body is required")
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperror.Validation("Request body too large")
		}
		return &apperror.Error{Kind: apperror.KindValidation, Message: "Invalid JSON: " + err.Error(), Err: err}
	}
	return nil
}

func validate(req any) error {
	if err := validation.Struct(req); err != nil {
		return &apperror.Error{Kind: apperror.KindValidation, Message: err.Error(), Err: err}
	}
	return nil
}
