package domain

import "errors"

var (
	// ErrUnauthenticated — запрос без валидного identity cookie.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrEmptyCart — попытка оформить заказ с пустой корзиной.
	ErrEmptyCart = errors.New("cart must contain at least one item")
	// Ошибка при некорректном количестве в позиции корзины (< 1).
	ErrQuantityInvalid = errors.New("quantity must be at least 1")
	// Ошибка отрицательной цены позиции.
	ErrPriceInvalid = errors.New("price must be non-negative")
	// Ошибка отсутствующего идентификатора товара.
	ErrProductIDRequired = errors.New("product_id is required")
	// ErrProductNotFound возвращается, если товара нет в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductExists — попытка создать товар с занятым идентификатором.
	ErrProductExists = errors.New("product already exists")
	// Ошибка отсутствующего имени товара.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка отсутствующего описания товара.
	ErrProductDescriptionRequired = errors.New("product description is required")
	// Ошибка отсутствующего e-mail пользователя.
	ErrEmailRequired = errors.New("email is required")
	// Ошибка отсутствующего пароля.
	ErrPasswordRequired = errors.New("password is required")
	// ErrEmailTaken — e-mail уже занят другим пользователем.
	ErrEmailTaken = errors.New("email already in use")
	// ErrUserNotFound возвращается, если пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials — неверная пара e-mail/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrProviderUnavailable — провайдер платежей недоступен или отклонил запрос.
	// Вызывающая сторона должна деградировать в demo-режим, а не падать.
	ErrProviderUnavailable = errors.New("payment provider unavailable")
	// ErrWebhookSignature — подпись webhook-уведомления не прошла проверку.
	ErrWebhookSignature = errors.New("webhook signature verification failed")
	// Ошибка отсутствующего order code в записи платежа.
	ErrOrderCodeRequired = errors.New("order_code is required")
	// Ошибка отрицательной суммы платежа.
	ErrPaymentAmountNegative = errors.New("payment amount must be non-negative")
	// ErrPaymentNotFound возвращается, если итог платежа ещё не записан.
	ErrPaymentNotFound = errors.New("payment not found")
)

// IsProviderFailure проверяет, относится ли ошибка к отказу платёжного провайдера.
func IsProviderFailure(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}
