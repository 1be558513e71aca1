package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Sign считает HMAC-SHA256 по строке "k=v&k=v&..." с ключами в алфавитном
// порядке — схема контрольной суммы провайдера.
func Sign(checksumKey string, fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+fields[k])
	}

	mac := hmac.New(sha256.New, []byte(checksumKey))
	mac.Write([]byte(strings.Join(pairs, "&")))
	return hex.EncodeToString(mac.Sum(nil))
}

// SignatureVerifier проверяет подлинность webhook-уведомлений по общему
// секрету. Реализует domain.NotificationVerifier.
type SignatureVerifier struct {
	checksumKey string
}

// NewSignatureVerifier создаёт верификатор с явно переданным секретом.
func NewSignatureVerifier(checksumKey string) *SignatureVerifier {
	return &SignatureVerifier{checksumKey: checksumKey}
}

// Verify сверяет подпись уведомления. Пустой секрет или пустая подпись —
// всегда отказ: проверка закрыта по умолчанию.
func (v *SignatureVerifier) Verify(n domain.PaymentNotification) bool {
	if v.checksumKey == "" || n.Signature == "" {
		return false
	}

	expected := Sign(v.checksumKey, NotificationFields(n))
	return hmac.Equal([]byte(expected), []byte(n.Signature))
}

// NotificationFields раскладывает уведомление в подписываемые поля.
func NotificationFields(n domain.PaymentNotification) map[string]string {
	return map[string]string{
		"amount":      fmt.Sprintf("%d", n.Amount),
		"code":        n.Code,
		"description": n.Description,
		"orderCode":   fmt.Sprintf("%d", n.OrderCode),
	}
}

var _ domain.NotificationVerifier = (*SignatureVerifier)(nil)
