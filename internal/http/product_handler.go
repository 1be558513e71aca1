package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// ProductHandler обслуживает каталог товаров.
type ProductHandler struct {
	products domain.ProductRepository
	logger   *log.Entry
}

// NewProductHandler создаёт обработчик каталога.
func NewProductHandler(products domain.ProductRepository, logger *log.Entry) *ProductHandler {
	if logger == nil {
		logger = log.New().WithField("component", "product-handler")
	}
	return &ProductHandler{products: products, logger: logger}
}

type productDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type createProductDTO struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

type updateProductDTO struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
}

func toProductDTO(p domain.Product) productDTO {
	return productDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// List возвращает каталог от новых товаров к старым.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("list products failed")
		respondError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}

	result := make([]productDTO, 0, len(products))
	for _, p := range products {
		result = append(result, toProductDTO(p))
	}
	respondJSON(w, http.StatusOK, result)
}

// Get возвращает товар по идентификатору.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.WithError(err).Error("get product failed")
		respondError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}

	respondJSON(w, http.StatusOK, toProductDTO(product))
}

// Create добавляет товар в каталог. Требует аутентификации.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	var req createProductDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if errs := product.ValidateInvariants(); len(errs) > 0 {
		respondError(w, http.StatusBadRequest, errs[0].Error())
		return
	}

	if err := h.products.Create(r.Context(), product); err != nil {
		h.logger.WithError(err).Error("create product failed")
		respondError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	h.logger.WithField("product_id", product.ID).Info("product created")
	respondJSON(w, http.StatusCreated, toProductDTO(product))
}

// Update частично обновляет товар. Требует аутентификации.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var req updateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.WithError(err).Error("get product failed")
		respondError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	product.Apply(domain.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	}, time.Now().UTC())
	if errs := product.ValidateInvariants(); len(errs) > 0 {
		respondError(w, http.StatusBadRequest, errs[0].Error())
		return
	}

	if err := h.products.Update(r.Context(), product); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.WithError(err).Error("update product failed")
		respondError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	respondJSON(w, http.StatusOK, toProductDTO(product))
}

// Delete удаляет товар. Требует аутентификации.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.WithError(err).Error("delete product failed")
		respondError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
