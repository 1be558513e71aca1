package domain

import "time"

// User — учётная запись покупателя. Хранится только bcrypt-хэш пароля.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Validate проверяет обязательные поля пользователя.
func (u *User) Validate() []error {
	var errs []error

	if u.Email == "" {
		errs = append(errs, ErrEmailRequired)
	}
	if u.PasswordHash == "" {
		errs = append(errs, ErrPasswordRequired)
	}

	return errs
}
