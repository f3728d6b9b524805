package banksdk

import (
	"encoding/json"
	"net/http"
)

func decodeBody(r *http.Request, target any) {
	_ = json.NewDecoder(r.Body).Decode(target)
}

func writeWireJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeWireError(w http.ResponseWriter, status int, code, message string) {
	writeWireJSON(w, status, map[string]string{"error": code, "message": message})
}
