package handlers

import "context"

// contextKey тип для ключей контекста
type contextKey string

// UserIDKey ключ для хранения user_id в контексте
const UserIDKey contextKey = "user_id"

// SessionCookieName имя cookie с opaque токеном сессии
const SessionCookieName = "session_token"

// GetUserID извлекает user_id из контекста запроса.
// Значение устанавливает только auth middleware: handlers никогда не
// принимают user id от клиента.
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}

// WithUserID возвращает контекст с установленным user_id
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}
