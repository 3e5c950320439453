// Package session implements opaque session tokens bound to users.
//
// Tokens are server-side state: once destroyed at logout they authenticate
// nothing, unlike self-contained tokens that stay valid until expiry.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/todoserver/internal/models"
	"github.com/iudanet/todoserver/internal/server/storage"
)

// tokenBytes задает энтропию токена: 32 случайных байта (256 бит)
const tokenBytes = 32

// DefaultTTL абсолютное время жизни сессии, если не задано в конфиге
const DefaultTTL = 30 * 24 * time.Hour

// Manager создает, проверяет и уничтожает сессии.
// Хранилище передается явно при конструировании, никакого глобального состояния.
type Manager struct {
	logger   *slog.Logger
	sessions storage.SessionStorage
	ttl      time.Duration
}

// NewManager creates a session manager over the given session storage.
// ttl <= 0 falls back to DefaultTTL.
func NewManager(logger *slog.Logger, sessions storage.SessionStorage, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		logger:   logger,
		sessions: sessions,
		ttl:      ttl,
	}
}

// Create generates a new unguessable token bound to userID and persists it.
func (m *Manager) Create(ctx context.Context, userID int64) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	now := time.Now()
	sess := &models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(m.ttl),
		CreatedAt: now,
	}

	if err := m.sessions.SaveSession(ctx, sess); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}

	return token, nil
}

// Resolve returns the user ID bound to token.
// Returns storage.ErrSessionNotFound for unknown, destroyed or expired tokens;
// an expired session is deleted on first use.
func (m *Manager) Resolve(ctx context.Context, token string) (int64, error) {
	sess, err := m.sessions.GetSession(ctx, token)
	if err != nil {
		return 0, err
	}

	if sess.Expired(time.Now()) {
		// Ленивое удаление: фоновых таймеров у сервера нет
		if err := m.sessions.DeleteSession(ctx, token); err != nil {
			m.logger.WarnContext(ctx, "failed to delete expired session", slog.Any("error", err))
		}
		return 0, storage.ErrSessionNotFound
	}

	return sess.UserID, nil
}

// Destroy removes the session bound to token.
// Idempotent: destroying an already-absent session is not an error.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	return m.sessions.DeleteSession(ctx, token)
}

// TTL returns the configured absolute session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// PurgeExpired removes expired sessions, returning how many were deleted.
// Called once at startup.
func (m *Manager) PurgeExpired(ctx context.Context) (int, error) {
	return m.sessions.DeleteExpiredSessions(ctx)
}

// generateToken создает новый random opaque токен
func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(buf), nil
}
