package webhook

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// Result — ответ провайдеру. Приёмник всегда подтверждает получение:
// negative ack (Accepted=false) не является HTTP-ошибкой, чтобы не
// провоцировать повторные доставки.
type Result struct {
	Accepted bool
	Message  string
}

// Receiver обрабатывает асинхронные уведомления провайдера о платежах.
// Доставка at-least-once: запись итога идемпотентна по order code.
type Receiver struct {
	payments domain.PaymentRepository
	verifier domain.NotificationVerifier
	producer *kafka.Producer // опциональный producer для событий платежей
	logger   *log.Entry
	metrics  *metrics.CheckoutMetrics
}

// Option настраивает Receiver.
type Option func(*Receiver)

// WithProducer включает публикацию событий платежей в Kafka.
func WithProducer(producer *kafka.Producer) Option {
	return func(r *Receiver) { r.producer = producer }
}

// WithMetrics включает сбор метрик webhook-приёмника.
func WithMetrics(m *metrics.CheckoutMetrics) Option {
	return func(r *Receiver) { r.metrics = m }
}

// NewReceiver создаёт приёмник уведомлений.
func NewReceiver(payments domain.PaymentRepository, verifier domain.NotificationVerifier, logger *log.Entry, opts ...Option) *Receiver {
	if logger == nil {
		logger = log.New().WithField("component", "webhook")
	}

	r := &Receiver{
		payments: payments,
		verifier: verifier,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HandleNotification проверяет подлинность уведомления и записывает итог.
// Непроверяемые payload отклоняются без записи успешного платежа; проверенные
// неуспехи записываются как failed. Исходящих вызовов у приёмника нет.
func (r *Receiver) HandleNotification(ctx context.Context, n domain.PaymentNotification) Result {
	logger := r.logger.WithFields(log.Fields{
		"order_code":  n.OrderCode,
		"status_code": n.Code,
	})

	if !r.verifier.Verify(n) {
		logger.Warn("webhook signature verification failed")
		r.recordMetric(metrics.WebhookResultRejected)
		return Result{Accepted: false, Message: "Payment failed or invalid webhook"}
	}

	status := domain.PaymentStatusFailed
	if n.Succeeded() {
		status = domain.PaymentStatusSucceeded
	}

	now := time.Now().UTC()
	record := domain.PaymentRecord{
		ID:          uuid.NewString(),
		OrderCode:   n.OrderCode,
		Status:      status,
		StatusCode:  n.Code,
		Amount:      n.Amount,
		Description: n.Description,
		ReceivedAt:  now,
		UpdatedAt:   now,
	}
	if errs := record.Validate(); len(errs) > 0 {
		logger.WithField("errors", errs).Warn("webhook payload rejected by validation")
		r.recordMetric(metrics.WebhookResultRejected)
		return Result{Accepted: false, Message: "Payment failed or invalid webhook"}
	}

	changed, err := r.payments.UpsertByOrderCode(ctx, record)
	if err != nil {
		logger.WithError(err).Error("record payment outcome failed")
		r.recordMetric(metrics.WebhookResultRejected)
		return Result{Accepted: false, Message: "Payment failed or invalid webhook"}
	}

	if changed {
		r.recordMetric(metrics.WebhookResultRecorded)
		r.publishPaymentEvent(n, status)
		logger.WithField("status", status).Info("payment outcome recorded")
	} else {
		// Повторная доставка того же итога: подтверждаем без побочных эффектов.
		r.recordMetric(metrics.WebhookResultDuplicate)
		logger.Debug("duplicate webhook delivery ignored")
	}

	if status == domain.PaymentStatusSucceeded {
		return Result{Accepted: true, Message: "Payment processed successfully"}
	}
	return Result{Accepted: false, Message: "Payment failed or invalid webhook"}
}

// publishPaymentEvent отправляет событие платежа в Kafka, если producer настроен.
func (r *Receiver) publishPaymentEvent(n domain.PaymentNotification, status domain.PaymentStatus) {
	if r.producer == nil {
		return
	}

	eventType := kafka.EventTypePaymentFailed
	if status == domain.PaymentStatusSucceeded {
		eventType = kafka.EventTypePaymentSucceeded
	}

	event := kafka.NewPaymentEvent(eventType, n.OrderCode, n.Amount, map[string]interface{}{
		"status_code": n.Code,
		"description": n.Description,
	})
	if err := r.producer.PublishEvent(kafka.TopicPaymentEvents, event.Key(), event); err != nil {
		// Ошибка публикации не влияет на acknowledgment провайдеру.
		r.logger.WithError(err).WithField("order_code", n.OrderCode).Warn("failed to publish payment event to kafka")
	}
}

func (r *Receiver) recordMetric(result string) {
	if r.metrics != nil {
		r.metrics.RecordWebhook(result)
	}
}
