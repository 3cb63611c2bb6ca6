package http

import (
	"encoding/json"
	"net/http"
	"time"

	"ecorent-backend/internal/apperr"
	"ecorent-backend/internal/logger"
)

// errorResponse is the JSON envelope returned for every failed request.
type errorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Code      string    `json:"code,omitempty"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError translates the error taxonomy to HTTP statuses:
// validation 400, not-found 404, conflict 409, anything else 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	label := "Internal Server Error"
	message := "an unexpected error occurred"

	if kind, ok := apperr.KindOf(err); ok {
		message = err.Error()
		switch kind {
		case apperr.KindValidation:
			status = http.StatusBadRequest
			label = "Validation Error"
		case apperr.KindNotFound:
			status = http.StatusNotFound
			label = "Resource Not Found"
		case apperr.KindConflict:
			status = http.StatusConflict
			label = "Conflict"
		}
	} else {
		logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	writeJSON(w, status, errorResponse{
		Timestamp: time.Now(),
		Status:    status,
		Error:     label,
		Code:      apperr.CodeOf(err),
		Message:   message,
		Path:      r.URL.Path,
	})
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, apperr.Validation("BAD_REQUEST", "%s", message))
}
