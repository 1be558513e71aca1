package domain

import "time"

// StatusCodeSuccess — код успешного платежа в конвенции провайдера.
const StatusCodeSuccess = "00"

// PaymentStatus описывает записанный итог платежа.
type PaymentStatus string

const (
	// PaymentStatusSucceeded — провайдер подтвердил оплату.
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	// PaymentStatusFailed — провайдер сообщил о неуспехе.
	PaymentStatusFailed PaymentStatus = "failed"
)

// PaymentNotification — входящее webhook-уведомление провайдера.
// Может доставляться больше одного раза на один order code.
type PaymentNotification struct {
	OrderCode   int64  `json:"orderCode"`
	Code        string `json:"code"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	Signature   string `json:"signature"`
}

// Succeeded проверяет код статуса на конвенцию успеха провайдера.
func (n PaymentNotification) Succeeded() bool {
	return n.Code == StatusCodeSuccess
}

// PaymentRecord — записанный итог платежа. Ключом дедупликации служит
// OrderCode: повторная доставка того же уведомления не создаёт вторую запись.
type PaymentRecord struct {
	ID          string
	OrderCode   int64
	Status      PaymentStatus
	StatusCode  string
	Amount      int64
	Description string
	ReceivedAt  time.Time
	UpdatedAt   time.Time
}

// Validate проверяет поля записи платежа.
func (p *PaymentRecord) Validate() []error {
	var errs []error

	if p.OrderCode <= 0 {
		errs = append(errs, ErrOrderCodeRequired)
	}
	if p.Amount < 0 {
		errs = append(errs, ErrPaymentAmountNegative)
	}

	return errs
}
