package http

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// errorResponse — единый конверт ошибок API.
// Fallback=true сообщает фронтенду, что провайдер недоступен и следует
// предложить пользователю demo-путь оплаты.
type errorResponse struct {
	Error    string `json:"error"`
	Details  string `json:"details,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Warn("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

func respondErrorDetails(w http.ResponseWriter, status int, message, details string, fallback bool) {
	respondJSON(w, status, errorResponse{Error: message, Details: details, Fallback: fallback})
}
