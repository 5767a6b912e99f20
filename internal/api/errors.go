package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// httpError writes the API error envelope. Error types: invalid_request_error
// (400, validation failures with no side effects), not_found (404), and
// api_error (5xx, unexpected failures).
func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
