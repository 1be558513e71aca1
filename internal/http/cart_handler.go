package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// CartHandler обслуживает корзину. Сама корзина живёт на клиенте: сервер
// валидирует мутации и возвращает снапшот строки, но состояния не хранит.
type CartHandler struct {
	products domain.ProductRepository
	logger   *log.Entry
}

// NewCartHandler создаёт обработчик корзины.
func NewCartHandler(products domain.ProductRepository, logger *log.Entry) *CartHandler {
	if logger == nil {
		logger = log.New().WithField("component", "cart-handler")
	}
	return &CartHandler{products: products, logger: logger}
}

type addCartItemDTO struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemDTO struct {
	Quantity int `json:"quantity"`
}

type cartItemDTO struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
}

type cartSummaryDTO struct {
	Items     []cartItemDTO `json:"items"`
	Total     float64       `json:"total"`
	ItemCount int           `json:"itemCount"`
}

// Get возвращает серверное представление корзины. Оно всегда пусто:
// строки держит клиентская сессия.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	respondJSON(w, http.StatusOK, cartSummaryDTO{Items: []cartItemDTO{}})
}

// AddItem валидирует товар и возвращает снапшот строки корзины: имя и цена
// фиксируются в момент добавления.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	var req addCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "Product ID is required")
		return
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	product, err := h.products.Get(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.WithError(err).Error("get product failed")
		respondError(w, http.StatusInternalServerError, "Failed to add item")
		return
	}

	item := cartItemDTO{
		ID:        fmt.Sprintf("%s-%d", product.ID, time.Now().UnixNano()),
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Quantity:  req.Quantity,
	}
	respondJSON(w, http.StatusCreated, item)
}

// UpdateItem валидирует новое количество строки.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	var req updateCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// RemoveItem подтверждает удаление строки.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Clear подтверждает опустошение корзины.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
