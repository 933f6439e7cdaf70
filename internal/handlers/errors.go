package handlers

import (
	"encoding/json"
	"net/http"
)

// JSONError sends a JSON error response with a single "error" field. Used for
// client mistakes (400). Database failures never go through here: the external
// contract for those is a bare 500 with an empty body.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// QueryFailure answers a database-layer failure: opaque 500, empty body.
// The cause has already been logged at the executor boundary.
func QueryFailure(w http.ResponseWriter) {
	w.WriteHeader(http.StatusInternalServerError)
}

// WriteJSON sends v with a 200 status.
func WriteJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
