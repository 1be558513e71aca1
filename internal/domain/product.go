package domain

import "time"

// Product описывает позицию каталога.
// Цена хранится в целых денежных единицах без субъединиц (см. Cart).
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateInvariants проверяет обязательные поля товара и возвращает список замечаний.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.Description == "" {
		errs = append(errs, ErrProductDescriptionRequired)
	}
	if p.Price < 0 {
		errs = append(errs, ErrPriceInvalid)
	}

	return errs
}

// ProductPatch описывает частичное обновление товара: nil-поля не меняются.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Image       *string
}

// Apply накладывает patch на товар и обновляет UpdatedAt.
func (p *Product) Apply(patch ProductPatch, now time.Time) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	p.UpdatedAt = now
}
