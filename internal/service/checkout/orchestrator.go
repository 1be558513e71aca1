package checkout

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// orderCodeRange — верхняя граница генерации order code.
// NOTE: код выбирается случайно без персистентности и проверки коллизий, как
// в исходной системе; уникальность остаётся на стороне провайдера. Генератор
// инъецируется через CodeFunc, чтобы его можно было заменить на
// персистентный, когда это станет требованием.
const orderCodeRange = 1_000_000

// CodeFunc генерирует order code для новой попытки checkout.
type CodeFunc func() int64

// Orchestrator ведёт создание платёжного поручения: валидация снапшота,
// генерация order code, выбор стратегии (live-провайдер или demo) и единый
// безретраевый вызов провайдера с деградацией в demo-путь при отказе.
type Orchestrator struct {
	creator domain.OrderCreator
	code    CodeFunc
	baseURL string
	logger  *log.Entry
	metrics *metrics.CheckoutMetrics
}

// Option настраивает Orchestrator.
type Option func(*Orchestrator)

// WithCodeFunc подменяет генератор order code (для тестов и будущей персистентности).
func WithCodeFunc(fn CodeFunc) Option {
	return func(o *Orchestrator) { o.code = fn }
}

// WithMetrics включает сбор метрик checkout.
func WithMetrics(m *metrics.CheckoutMetrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// NewOrchestrator создаёт оркестратор поверх выбранной стратегии создания
// заказа. Стратегию выбирает сборка приложения: боевой клиент при полных
// учётных данных провайдера, иначе demo-симуляция.
func NewOrchestrator(creator domain.OrderCreator, baseURL string, logger *log.Entry, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = log.New().WithField("component", "checkout")
	}

	o := &Orchestrator{
		creator: creator,
		code:    func() int64 { return rand.Int64N(orderCodeRange) },
		baseURL: baseURL,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// CreateOrder оформляет снапшот корзины в платёжное поручение.
// Порядок предусловий фиксирован: identity, затем непустая корзина; любой
// отказ происходит до обращения к провайдеру.
func (o *Orchestrator) CreateOrder(ctx context.Context, userID string, snap domain.CartSnapshot) (domain.CheckoutResult, error) {
	start := time.Now()
	defer func() {
		if o.metrics != nil {
			o.metrics.RecordCheckoutDuration(time.Since(start))
		}
	}()

	if userID == "" {
		if o.metrics != nil {
			o.metrics.RecordCheckoutRejected()
		}
		return domain.CheckoutResult{}, domain.ErrUnauthenticated
	}
	if errs := snap.Validate(); len(errs) > 0 {
		if o.metrics != nil {
			o.metrics.RecordCheckoutRejected()
		}
		return domain.CheckoutResult{}, errs[0]
	}

	req := o.buildRequest(snap)

	result, err := o.creator.CreateOrder(ctx, req)
	if err != nil {
		// Провайдер недоступен или отклонил запрос: не ретраим, помечаем
		// отказ как деградируемый, чтобы вызывающая сторона увела
		// пользователя в demo-путь.
		if o.metrics != nil {
			o.metrics.RecordCheckoutFallback()
		}
		o.logger.WithError(err).WithFields(log.Fields{
			"order_code": req.OrderCode,
			"user_id":    userID,
		}).Warn("order creation failed, fallback to demo path")
		return domain.CheckoutResult{}, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}

	if o.metrics != nil {
		o.metrics.RecordCheckoutCreated(string(result.Mode))
	}
	o.logger.WithFields(log.Fields{
		"order_code": result.OrderCode,
		"user_id":    userID,
		"mode":       result.Mode,
	}).Info("payment order created")

	return result, nil
}

// buildRequest собирает тело запроса провайдеру из снапшота корзины.
// Суммы округляются до целых денежных единиц: валюта провайдера не делится.
func (o *Orchestrator) buildRequest(snap domain.CartSnapshot) domain.OrderRequest {
	items := make([]domain.OrderRequestItem, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, domain.OrderRequestItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    int64(math.Round(item.Price)),
		})
	}

	return domain.OrderRequest{
		OrderCode:   o.code(),
		Amount:      int64(math.Round(snap.DeclaredTotal)),
		Description: fmt.Sprintf("Thanh toán đơn hàng - %d sản phẩm", len(snap.Items)),
		Items:       items,
		ReturnURL:   o.baseURL + "/payment/success",
		CancelURL:   o.baseURL + "/cart",
	}
}
