// Package auth implements password hashing for stored credentials.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost стоимость bcrypt хеширования.
// 12 раундов: заметно дороже дефолтных 10 для offline перебора,
// но все еще десятки миллисекунд на login.
const BcryptCost = 12

// ErrPasswordMismatch indicates that the password does not match the stored hash
var ErrPasswordMismatch = errors.New("password mismatch")

// HashPassword hashes a plaintext password with bcrypt.
// The plaintext is never persisted.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword checks a plaintext password against a stored bcrypt hash.
// Returns ErrPasswordMismatch when they don't match.
func VerifyPassword(password, passwordHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("failed to verify password: %w", err)
	}

	return nil
}
