package validation

import (
	"fmt"
	"regexp"
)

// UsernamePattern определяет допустимый формат username
// Только латинские буквы (a-z, A-Z), цифры (0-9), нижнее подчеркивание (_)
// Длина: 1-32 символа
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{1,32}$`)

// MaxUsernameLen максимальная длина username
const MaxUsernameLen = 32

// ValidateUsername проверяет, что username соответствует требованиям
// Формат: только латинские буквы (a-z, A-Z), цифры (0-9), нижнее подчеркивание (_)
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters (a-z, A-Z), numbers (0-9), and underscores (_)")
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к паролю.
// Пароль хранится только как bcrypt хеш, поэтому единственное жесткое
// требование — непустой и не длиннее лимита bcrypt (72 байта).
func ValidatePassword(password string) error {
	const maxPasswordLen = 72

	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) > maxPasswordLen {
		return fmt.Errorf("password must not exceed %d bytes", maxPasswordLen)
	}

	return nil
}
