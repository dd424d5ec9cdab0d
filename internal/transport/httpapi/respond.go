package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/sandevgo/netnavi/pkg/log"
)

func writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, statusCode int, details string) {
	writeJSON(w, r, statusCode, map[string]string{
		"error":   http.StatusText(statusCode),
		"details": details,
	})
}
