package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// AuthHandler обслуживает регистрацию, вход и выход покупателей.
type AuthHandler struct {
	users  domain.UserRepository
	tokens *auth.TokenManager
	logger *log.Entry
}

// NewAuthHandler создаёт обработчик аутентификации.
func NewAuthHandler(users domain.UserRepository, tokens *auth.TokenManager, logger *log.Entry) *AuthHandler {
	if logger == nil {
		logger = log.New().WithField("component", "auth-handler")
	}
	return &AuthHandler{users: users, tokens: tokens, logger: logger}
}

type credentialsDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Register создаёт учётную запись и сразу выпускает identity cookie.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "Email is required")
		return
	}
	if req.Password == "" {
		respondError(w, http.StatusBadRequest, "Password is required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.WithError(err).Error("hash password failed")
		respondError(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			respondError(w, http.StatusConflict, "Email already in use")
			return
		}
		h.logger.WithError(err).Error("create user failed")
		respondError(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	if !h.issueCookie(w, user) {
		return
	}

	h.logger.WithField("user_id", user.ID).Info("user registered")
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"user": userDTO{ID: user.ID, Email: user.Email},
	})
}

// Login проверяет пару e-mail/пароль и выпускает identity cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		// Несуществующий e-mail и неверный пароль неразличимы для клиента.
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !h.issueCookie(w, user) {
		return
	}

	h.logger.WithField("user_id", user.ID).Info("user logged in")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user": userDTO{ID: user.ID, Email: user.Email},
	})
}

// Logout сбрасывает identity cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     identityCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Me возвращает текущую личность. Всегда отвечает 200: отсутствие
// аутентификации — валидное состояние, а не ошибка.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusOK, map[string]interface{}{"authenticated": false})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"user":          userDTO{ID: identity.UserID, Email: identity.Email},
	})
}

func (h *AuthHandler) issueCookie(w http.ResponseWriter, user domain.User) bool {
	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		h.logger.WithError(err).Error("issue token failed")
		respondError(w, http.StatusInternalServerError, "Failed to issue session")
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     identityCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return true
}
