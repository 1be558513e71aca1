package domain

import "context"

// ProductRepository описывает требования к хранилищу каталога.
type ProductRepository interface {
	// Create сохраняет новый товар. Возвращает ошибку, если ID уже занят.
	Create(ctx context.Context, product Product) error
	// Get возвращает товар по идентификатору или ErrProductNotFound.
	Get(ctx context.Context, id string) (Product, error)
	// List возвращает каталог, отсортированный от новых к старым.
	List(ctx context.Context) ([]Product, error)
	// Update перезаписывает товар или возвращает ErrProductNotFound.
	Update(ctx context.Context, product Product) error
	// Delete удаляет товар или возвращает ErrProductNotFound.
	Delete(ctx context.Context, id string) error
}

// UserRepository описывает требования к хранилищу учётных записей.
type UserRepository interface {
	// Create сохраняет пользователя; ErrEmailTaken при конфликте e-mail.
	Create(ctx context.Context, user User) error
	// GetByEmail возвращает пользователя или ErrUserNotFound.
	GetByEmail(ctx context.Context, email string) (User, error)
}

// PaymentRepository хранит итоги платежей идемпотентно по order code.
type PaymentRepository interface {
	// UpsertByOrderCode записывает итог платежа. Повторная запись той же пары
	// (order code, status code) ничего не меняет; возвращает changed=true,
	// только если статус реально перешёл в новое состояние.
	UpsertByOrderCode(ctx context.Context, record PaymentRecord) (changed bool, err error)
	// GetByOrderCode возвращает записанный итог или ErrPaymentNotFound.
	GetByOrderCode(ctx context.Context, orderCode int64) (PaymentRecord, error)
}

// OrderCreator — стратегия создания платёжного поручения. Две реализации:
// боевой клиент провайдера и локальная demo-симуляция; оркестратор выбирает
// одну из них при сборке приложения, а не inline-условием.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req OrderRequest) (CheckoutResult, error)
}

// NotificationVerifier проверяет подлинность webhook-уведомления.
type NotificationVerifier interface {
	Verify(n PaymentNotification) bool
}
