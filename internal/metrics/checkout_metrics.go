package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics содержит метрики checkout-потока и webhook-приёмника.
type CheckoutMetrics struct {
	// Счётчик созданных заказов по режиму (live/demo).
	checkoutCreated *prometheus.CounterVec
	// Счётчик деградаций в demo-путь после отказа провайдера.
	checkoutFallback prometheus.Counter
	// Счётчик отклонённых попыток checkout (пустая корзина, нет identity).
	checkoutRejected prometheus.Counter

	// Гистограмма времени создания заказа.
	checkoutDuration prometheus.Histogram

	// Счётчик webhook-уведомлений по результату обработки.
	webhookReceived *prometheus.CounterVec
}

// Результаты обработки webhook для метрик.
const (
	WebhookResultRecorded  = "recorded"
	WebhookResultDuplicate = "duplicate"
	WebhookResultRejected  = "rejected"
)

// NewCheckoutMetrics создаёт метрики в default registry.
func NewCheckoutMetrics() *CheckoutMetrics {
	return newCheckoutMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newCheckoutMetricsWithRegisterer(registerer prometheus.Registerer) *CheckoutMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CheckoutMetrics{
		checkoutCreated: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_checkout_created_total",
			Help: "Total number of payment orders created grouped by mode.",
		}, []string{"mode"}),
		checkoutFallback: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_checkout_fallback_total",
			Help: "Total number of provider failures degraded to the demo path.",
		}),
		checkoutRejected: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_checkout_rejected_total",
			Help: "Total number of checkout attempts rejected before any provider call.",
		}),
		checkoutDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "storefront_checkout_duration_seconds",
			Help:    "Duration of order creation in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		webhookReceived: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_webhook_received_total",
			Help: "Total number of payment webhooks grouped by processing result.",
		}, []string{"result"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordCheckoutCreated увеличивает счётчик созданных заказов для режима.
func (m *CheckoutMetrics) RecordCheckoutCreated(mode string) {
	m.checkoutCreated.WithLabelValues(mode).Inc()
}

// RecordCheckoutFallback увеличивает счётчик деградаций в demo-путь.
func (m *CheckoutMetrics) RecordCheckoutFallback() {
	m.checkoutFallback.Inc()
}

// RecordCheckoutRejected увеличивает счётчик отклонённых попыток.
func (m *CheckoutMetrics) RecordCheckoutRejected() {
	m.checkoutRejected.Inc()
}

// RecordCheckoutDuration записывает время создания заказа.
func (m *CheckoutMetrics) RecordCheckoutDuration(duration time.Duration) {
	m.checkoutDuration.Observe(duration.Seconds())
}

// RecordWebhook увеличивает счётчик webhook-уведомлений для результата.
func (m *CheckoutMetrics) RecordWebhook(result string) {
	m.webhookReceived.WithLabelValues(result).Inc()
}
