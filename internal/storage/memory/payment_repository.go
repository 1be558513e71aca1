package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type paymentRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[int64]domain.PaymentRecord
}

// NewPaymentRepository создаёт in-memory реализацию PaymentRepository.
func NewPaymentRepository() domain.PaymentRepository {
	return &paymentRepositoryInMemory{
		items: make(map[int64]domain.PaymentRecord),
	}
}

// UpsertByOrderCode записывает итог платежа идемпотентно по order code.
// Повторная доставка той же пары (order code, status code) не меняет запись
// и возвращает changed=false.
func (r *paymentRepositoryInMemory) UpsertByOrderCode(_ context.Context, record domain.PaymentRecord) (bool, error) {
	if errs := record.Validate(); len(errs) > 0 {
		return false, errs[0]
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[record.OrderCode]
	if ok && existing.StatusCode == record.StatusCode && existing.Status == record.Status {
		return false, nil
	}

	if ok {
		// Сохраняем первоначальные ID и время получения; меняется только итог.
		record.ID = existing.ID
		record.ReceivedAt = existing.ReceivedAt
	}
	record.UpdatedAt = time.Now().UTC()
	r.items[record.OrderCode] = record
	return true, nil
}

// GetByOrderCode возвращает записанный итог или ErrPaymentNotFound.
func (r *paymentRepositoryInMemory) GetByOrderCode(_ context.Context, orderCode int64) (domain.PaymentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.items[orderCode]
	if !ok {
		return domain.PaymentRecord{}, domain.ErrPaymentNotFound
	}
	return record, nil
}

var _ domain.PaymentRepository = (*paymentRepositoryInMemory)(nil)
