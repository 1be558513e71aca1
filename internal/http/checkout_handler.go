package http

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/checkout"
)

// CheckoutHandler оформляет клиентскую корзину в платёжное поручение.
// orchestrator работает поверх стратегии, выбранной сборкой приложения;
// demo всегда идёт по симулированному пути и служит тестовым входом.
type CheckoutHandler struct {
	orchestrator *checkout.Orchestrator
	demo         *checkout.Orchestrator
	logger       *log.Entry
}

// NewCheckoutHandler создаёт обработчик checkout.
func NewCheckoutHandler(orchestrator, demo *checkout.Orchestrator, logger *log.Entry) *CheckoutHandler {
	if logger == nil {
		logger = log.New().WithField("component", "checkout-handler")
	}
	return &CheckoutHandler{orchestrator: orchestrator, demo: demo, logger: logger}
}

type checkoutItemDTO struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type checkoutRequestDTO struct {
	Items []checkoutItemDTO `json:"items"`
	Total float64           `json:"total"`
}

type checkoutResponseDTO struct {
	OrderCode  int64  `json:"orderCode"`
	PaymentURL string `json:"paymentUrl"`
	QRCode     string `json:"qrCode,omitempty"`
	Demo       bool   `json:"demo,omitempty"`
}

func (r checkoutRequestDTO) toSnapshot() domain.CartSnapshot {
	items := make([]domain.CartItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.CartItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return domain.CartSnapshot{Items: items, DeclaredTotal: r.Total}
}

// CreateOrder оформляет заказ по снапшоту корзины из тела запроса.
func (h *CheckoutHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())

	var req checkoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := h.orchestrator.CreateOrder(r.Context(), identity.UserID, req.toSnapshot())
	if err != nil {
		h.respondCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCheckoutResponse(result))
}

// TestOrder всегда идёт по demo-пути. Аутентификация не требуется, но
// валидация снапшота сохраняется: пустая корзина отклоняется.
func (h *CheckoutHandler) TestOrder(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	snap := req.toSnapshot()
	if errs := snap.Validate(); len(errs) > 0 {
		h.respondCheckoutError(w, errs[0])
		return
	}

	// Тестовый вход обходит identity-предусловие: подставляем фиктивного
	// пользователя, чтобы оркестратор не отклонил запрос.
	result, err := h.demo.CreateOrder(r.Context(), "test", snap)
	if err != nil {
		h.respondCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCheckoutResponse(result))
}

func toCheckoutResponse(result domain.CheckoutResult) checkoutResponseDTO {
	return checkoutResponseDTO{
		OrderCode:  result.OrderCode,
		PaymentURL: result.PaymentURL,
		QRCode:     result.QRCode,
		Demo:       result.Mode == domain.CheckoutModeDemo,
	}
}

func (h *CheckoutHandler) respondCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "No items in cart")
	case errors.Is(err, domain.ErrQuantityInvalid), errors.Is(err, domain.ErrPriceInvalid):
		respondError(w, http.StatusBadRequest, err.Error())
	case domain.IsProviderFailure(err):
		// Провайдер недоступен: фронтенд предложит demo-путь.
		respondErrorDetails(w, http.StatusInternalServerError, "Failed to create payment order", err.Error(), true)
	default:
		h.logger.WithError(err).Error("checkout failed")
		respondError(w, http.StatusInternalServerError, "Failed to create payment order")
	}
}
