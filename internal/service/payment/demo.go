package payment

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// DemoPaymentURL — локальная страница симулированного checkout.
const DemoPaymentURL = "/payment/demo"

// DemoCreator — симулированная реализация domain.OrderCreator. Используется,
// когда учётные данные провайдера не заданы: это документированный
// деградированный режим, а не ошибка.
type DemoCreator struct {
	logger *log.Entry
}

// NewDemoCreator создаёт demo-реализацию.
func NewDemoCreator(logger *log.Entry) *DemoCreator {
	if logger == nil {
		logger = log.New().WithField("component", "payment-demo")
	}
	return &DemoCreator{logger: logger}
}

// CreateOrder возвращает локальный redirect без обращений по сети.
func (d *DemoCreator) CreateOrder(_ context.Context, req domain.OrderRequest) (domain.CheckoutResult, error) {
	d.logger.WithFields(log.Fields{
		"order_code": req.OrderCode,
		"amount":     req.Amount,
	}).Info("demo checkout created")

	return domain.CheckoutResult{
		OrderCode:  req.OrderCode,
		PaymentURL: DemoPaymentURL,
		Mode:       domain.CheckoutModeDemo,
	}, nil
}

var _ domain.OrderCreator = (*DemoCreator)(nil)
