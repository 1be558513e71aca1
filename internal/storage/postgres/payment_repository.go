package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository создаёт PostgreSQL-реализацию PaymentRepository.
func NewPaymentRepository(store *Store) domain.PaymentRepository {
	return &paymentRepository{db: store.DB()}
}

// UpsertByOrderCode записывает результат платежа идемпотентно по order_code.
// Возвращает changed=false, если запись уже существует с тем же статусом.
// Конкурентные первые доставки одного order_code сериализуются через
// ON CONFLICT DO NOTHING: проигравшая вставка проваливается в SELECT FOR UPDATE
// и идёт по пути дубликата, а не ошибки.
func (r *paymentRepository) UpsertByOrderCode(ctx context.Context, record domain.PaymentRecord) (bool, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(opCtx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var res sql.Result
	res, err = tx.ExecContext(opCtx, `
		INSERT INTO payments (
			id, order_code, status, status_code, amount, description, received_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (order_code) DO NOTHING
	`,
		record.ID, record.OrderCode, string(record.Status), record.StatusCode,
		record.Amount, record.Description, record.ReceivedAt, record.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert payment: %w", err)
	}

	var inserted int64
	inserted, err = res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if inserted == 1 {
		if err = tx.Commit(); err != nil {
			return false, fmt.Errorf("commit payment upsert: %w", err)
		}
		return true, nil
	}

	// Запись уже существует: блокируем её и сравниваем итог.
	var (
		existingStatus     string
		existingStatusCode string
	)
	err = tx.QueryRowContext(opCtx, `
		SELECT status, status_code
		FROM payments
		WHERE order_code = $1
		FOR UPDATE
	`, record.OrderCode).Scan(&existingStatus, &existingStatusCode)
	if err != nil {
		return false, fmt.Errorf("select payment for update: %w", err)
	}

	if existingStatus == string(record.Status) && existingStatusCode == record.StatusCode {
		if err = tx.Commit(); err != nil {
			return false, fmt.Errorf("commit payment upsert: %w", err)
		}
		return false, nil
	}

	if _, err = tx.ExecContext(opCtx, `
		UPDATE payments
		SET status = $1,
		    status_code = $2,
		    amount = $3,
		    description = $4,
		    updated_at = $5
		WHERE order_code = $6
	`,
		string(record.Status), record.StatusCode, record.Amount,
		record.Description, record.UpdatedAt, record.OrderCode,
	); err != nil {
		return false, fmt.Errorf("update payment: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit payment upsert: %w", err)
	}

	return true, nil
}

func (r *paymentRepository) GetByOrderCode(ctx context.Context, orderCode int64) (domain.PaymentRecord, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var (
		record domain.PaymentRecord
		status string
	)
	err := r.db.QueryRowContext(opCtx, `
		SELECT id, order_code, status, status_code, amount, description, received_at, updated_at
		FROM payments
		WHERE order_code = $1
	`, orderCode).Scan(
		&record.ID, &record.OrderCode, &status, &record.StatusCode,
		&record.Amount, &record.Description, &record.ReceivedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PaymentRecord{}, domain.ErrPaymentNotFound
		}
		return domain.PaymentRecord{}, fmt.Errorf("select payment: %w", err)
	}
	record.Status = domain.PaymentStatus(status)

	return record, nil
}

var _ domain.PaymentRepository = (*paymentRepository)(nil)
