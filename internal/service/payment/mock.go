package payment

import (
	"context"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// MockCreator — конфигурируемая заглушка domain.OrderCreator для тестов.
type MockCreator struct {
	Result domain.CheckoutResult
	Err    error

	Calls    int
	LastReq  domain.OrderRequest
	LastMode domain.CheckoutMode
}

// NewMockCreator возвращает mock с успешным live-сценарием по умолчанию.
func NewMockCreator() *MockCreator {
	return &MockCreator{
		Result: domain.CheckoutResult{
			PaymentURL: "https://pay.example.com/checkout/abc",
			Mode:       domain.CheckoutModeLive,
		},
	}
}

// CreateOrder возвращает заранее настроенный результат и считает вызовы.
func (m *MockCreator) CreateOrder(_ context.Context, req domain.OrderRequest) (domain.CheckoutResult, error) {
	m.Calls++
	m.LastReq = req
	if m.Err != nil {
		return domain.CheckoutResult{}, m.Err
	}
	result := m.Result
	if result.OrderCode == 0 {
		result.OrderCode = req.OrderCode
	}
	m.LastMode = result.Mode
	return result, nil
}

var _ domain.OrderCreator = (*MockCreator)(nil)
