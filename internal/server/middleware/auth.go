package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/todoserver/internal/server/handlers"
	"github.com/iudanet/todoserver/internal/server/session"
	"github.com/iudanet/todoserver/internal/server/storage"
)

// Auth создает middleware для проверки сессии.
// Токен берется из cookie (браузерные клиенты) либо из заголовка
// Authorization: Bearer (остальные). Невалидная сессия отклоняется
// до любого обращения к хранилищу задач.
func Auth(logger *slog.Logger, sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				logger.Warn("missing session token", "path", r.URL.Path)
				sendUnauthorized(w, "not authenticated")
				return
			}

			// Проверяем токен в session store
			userID, err := sessions.Resolve(r.Context(), token)
			if err != nil {
				if errors.Is(err, storage.ErrSessionNotFound) {
					logger.Warn("invalid session token", "path", r.URL.Path)
					sendUnauthorized(w, "not authenticated")
					return
				}
				logger.Error("failed to resolve session", "error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"Internal Server Error","message":"internal server error"}`))
				return
			}

			// Добавляем user_id в контекст; дальше по цепочке только он
			// определяет владельца
			ctx := handlers.WithUserID(r.Context(), userID)

			logger.Debug("user authenticated", "user_id", userID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionToken извлекает токен сессии из запроса
func sessionToken(r *http.Request) string {
	// Сначала cookie
	if cookie, err := r.Cookie(handlers.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	// Потом Authorization: Bearer <token>
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// sendUnauthorized отправляет 401 в формате ErrorResponse
func sendUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized","message":"` + message + `"}`))
}
