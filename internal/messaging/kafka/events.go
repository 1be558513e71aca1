package kafka

import (
	"strconv"
	"time"
)

// EventType определяет тип события платёжного потока.
type EventType string

const (
	// Payment события — итоги, полученные через webhook.
	EventTypePaymentSucceeded EventType = "payment.succeeded"
	EventTypePaymentFailed    EventType = "payment.failed"

	// Checkout события.
	EventTypeOrderCreated EventType = "order.created"
)

// Topics для Kafka.
const (
	TopicPaymentEvents = "storefront.payment.events"
)

// PaymentEvent представляет событие жизненного цикла платежа.
type PaymentEvent struct {
	EventType EventType              `json:"event_type"`
	OrderCode int64                  `json:"order_code"`
	Amount    int64                  `json:"amount"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewPaymentEvent создает событие платежа.
func NewPaymentEvent(eventType EventType, orderCode, amount int64, metadata map[string]interface{}) *PaymentEvent {
	return &PaymentEvent{
		EventType: eventType,
		OrderCode: orderCode,
		Amount:    amount,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}
}

// Key возвращает ключ партиционирования: события одного заказа идут в одну партицию.
func (e *PaymentEvent) Key() string {
	return strconv.FormatInt(e.OrderCode, 10)
}
