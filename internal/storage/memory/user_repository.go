package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type userRepositoryInMemory struct {
	mu      sync.RWMutex
	byEmail map[string]domain.User
}

// NewUserRepository создаёт in-memory реализацию UserRepository.
func NewUserRepository() domain.UserRepository {
	return &userRepositoryInMemory{
		byEmail: make(map[string]domain.User),
	}
}

// Create сохраняет пользователя; e-mail сравнивается без учёта регистра.
func (r *userRepositoryInMemory) Create(_ context.Context, user domain.User) error {
	if errs := user.Validate(); len(errs) > 0 {
		return errs[0]
	}

	key := normalizeEmail(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[key]; exists {
		return domain.ErrEmailTaken
	}
	r.byEmail[key] = user
	return nil
}

// GetByEmail возвращает пользователя или ErrUserNotFound.
func (r *userRepositoryInMemory) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ domain.UserRepository = (*userRepositoryInMemory)(nil)
