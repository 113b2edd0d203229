package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes a JSON response body with the given status
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// NoContent writes a 204. Used by the lifecycle endpoints (start, leave,
// destroy) that have nothing to report on success.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
