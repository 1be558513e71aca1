package domain

// CartSnapshot — замороженный набор строк корзины и заявленная сумма,
// передаваемые оркестратору в момент начала checkout. Живёт одну попытку
// оформления и на сервере не сохраняется.
type CartSnapshot struct {
	Items         []CartItem
	DeclaredTotal float64
}

// Validate проверяет снапшот перед обращением к провайдеру.
func (s *CartSnapshot) Validate() []error {
	var errs []error

	if len(s.Items) == 0 {
		errs = append(errs, ErrEmptyCart)
	}
	for _, item := range s.Items {
		if item.Quantity < 1 {
			errs = append(errs, ErrQuantityInvalid)
		}
		if item.Price < 0 {
			errs = append(errs, ErrPriceInvalid)
		}
	}

	return errs
}

// CheckoutMode различает боевой и симулированный путь оформления.
type CheckoutMode string

const (
	// CheckoutModeLive — заказ создан у реального провайдера.
	CheckoutModeLive CheckoutMode = "live"
	// CheckoutModeDemo — провайдер не сконфигурирован, используется локальная симуляция.
	CheckoutModeDemo CheckoutMode = "demo"
)

// CheckoutResult — результат успешного создания платёжного поручения.
type CheckoutResult struct {
	OrderCode  int64
	PaymentURL string
	QRCode     string
	Mode       CheckoutMode
}

// OrderRequestItem — позиция, отправляемая провайдеру. Цена округлена до целых
// денежных единиц: валюта провайдера субъединиц не имеет.
type OrderRequestItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// OrderRequest — тело запроса на создание платежа у провайдера.
// Отправляется ровно один раз, без автоматических повторов.
type OrderRequest struct {
	OrderCode   int64              `json:"orderCode"`
	Amount      int64              `json:"amount"`
	Description string             `json:"description"`
	Items       []OrderRequestItem `json:"items"`
	ReturnURL   string             `json:"returnUrl"`
	CancelURL   string             `json:"cancelUrl"`
}
