package models

import "time"

// User представляет пользователя в системе
type User struct {
	ID           int64     `json:"id"`         // автоинкрементный ID пользователя
	Username     string    `json:"username"`   // уникальный username
	PasswordHash string    `json:"-"`          // bcrypt хеш пароля, наружу не отдается
	CreatedAt    time.Time `json:"created_at"` // время создания
}
