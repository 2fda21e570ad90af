package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type errorBody struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

// JSON writes a 200 response with the payload as-is; the client expects
// raw entities, not an envelope.
func JSON(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// Error writes the {"error": "..."} body every failure path uses.
func Error(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errorBody{Error: message})
}
