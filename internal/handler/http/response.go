package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// errorResponse is the JSON error payload shape used by all API handlers.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, log *zap.Logger, payload interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, log *zap.Logger, message string, status int) {
	writeJSON(w, log, errorResponse{Error: message}, status)
}
