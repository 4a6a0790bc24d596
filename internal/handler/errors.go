package handler

import (
	"net/http"

	"github.com/goccy/go-json"
)

// errorResponse is the body of every non-2xx response:
// {"error": {"code": "not_found", "message": "trip not found"}}.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the client has gone away; nothing left to report to.
	json.NewEncoder(w).Encode(v)
}

// notFound writes a 404. The caller supplies the message (e.g. "trip not
// found") because the handler is the layer that knows what was looked up.
func notFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: errorDetail{Code: "not_found", Message: message}})
}

// badRequest writes a 400 for input rejected before reaching the service
// layer (e.g. a malformed id or query parameter).
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorDetail{Code: "bad_request", Message: message}})
}

// internalError logs err and writes a 500 without leaking its details.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError,
		errorResponse{Error: errorDetail{Code: "internal_error", Message: "internal server error"}})
}
