package http

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/webhook"
)

// WebhookHandler принимает уведомления провайдера о платежах.
type WebhookHandler struct {
	receiver *webhook.Receiver
	logger   *log.Entry
}

// NewWebhookHandler создаёт обработчик webhook.
func NewWebhookHandler(receiver *webhook.Receiver, logger *log.Entry) *WebhookHandler {
	if logger == nil {
		logger = log.New().WithField("component", "webhook-handler")
	}
	return &WebhookHandler{receiver: receiver, logger: logger}
}

type webhookResponseDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Handle обрабатывает уведомление. HTTP-статус всегда 200: провайдер должен
// считать доставку завершённой, исход сообщается в теле ответа.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var notification domain.PaymentNotification
	if err := json.NewDecoder(r.Body).Decode(&notification); err != nil {
		h.logger.WithError(err).Warn("malformed webhook payload")
		respondJSON(w, http.StatusOK, webhookResponseDTO{
			Success: false,
			Message: "Payment failed or invalid webhook",
		})
		return
	}

	result := h.receiver.HandleNotification(r.Context(), notification)
	respondJSON(w, http.StatusOK, webhookResponseDTO{
		Success: result.Accepted,
		Message: result.Message,
	})
}
