package models

import "time"

// Session представляет серверную сессию пользователя.
// Токен выдается при login/register и уничтожается при logout.
type Session struct {
	Token     string    `json:"token"`      // opaque токен (32 random bytes, base64url)
	UserID    int64     `json:"user_id"`    // ID пользователя
	ExpiresAt time.Time `json:"expires_at"` // абсолютное время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
}

// Expired reports whether the session is past its absolute TTL.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
