package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// TokenTTL — срок жизни identity cookie.
const TokenTTL = 7 * 24 * time.Hour

// Identity — проверенная личность из signed-token.
type Identity struct {
	UserID string
	Email  string
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager выпускает и проверяет подписанные токены. Секрет передаётся
// явно при создании — package-level состояния нет.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager создаёт менеджер с недельным TTL.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    time.Now,
	}
}

// Issue подписывает токен с sub=userID и e-mail в claims.
func (m *TokenManager) Issue(userID, email string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify разбирает и проверяет токен. Любой дефект (подпись, срок, алгоритм)
// приводит к ErrUnauthenticated.
func (m *TokenManager) Verify(raw string) (Identity, error) {
	if raw == "" {
		return Identity{}, domain.ErrUnauthenticated
	}

	var parsed claims
	token, err := jwt.ParseWithClaims(raw, &parsed, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return Identity{}, domain.ErrUnauthenticated
	}
	if parsed.Subject == "" {
		return Identity{}, domain.ErrUnauthenticated
	}

	return Identity{UserID: parsed.Subject, Email: parsed.Email}, nil
}
