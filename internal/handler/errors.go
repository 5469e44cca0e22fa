package handlers

import (
	"net/http"

	"github.com/goccy/go-json"

	"campdirectory/internal/apperror"
	"campdirectory/internal/logger"
	"campdirectory/internal/query"
)

// Response is the envelope of every API reply.
type Response struct {
	Success    bool              `json:"success"`
	Count      *int              `json:"count,omitempty"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
	Data       any               `json:"data,omitempty"`
	Token      string            `json:"token,omitempty"`
	Error      string            `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, body Response, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// WriteError sends an error envelope with the given message and status.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, Response{Success: false, Error: message}, statusCode)
}

// WriteSuccess sends data wrapped in a success envelope.
func WriteSuccess(w http.ResponseWriter, data any, statusCode int) {
	writeJSON(w, Response{Success: true, Data: data}, statusCode)
}

// HandleError is the single place where errors become HTTP responses.
// Anything that is not an AppError is logged and reported as a server error.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := apperror.From(err)
	if !ok || appErr.Kind == apperror.Internal {
		log.WithError(err).Error("Request failed")
		WriteError(w, "Server Error", http.StatusInternalServerError)
		return
	}

	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error(appErr.Message)
	} else {
		log.WithError(err).Debug(appErr.Message)
	}
	WriteError(w, appErr.Message, status)
}
