package httpapi

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Reasons []string `json:"reasons,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: code, Message: msg})
}

func writeDenied(w http.ResponseWriter, reasons []string) {
	writeJSON(w, http.StatusForbidden, errorBody{
		Error:   "write_window_restricted",
		Message: "mutations are not permitted at this time",
		Reasons: reasons,
	})
}
