package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todoserver/internal/models"
	"github.com/iudanet/todoserver/internal/server/storage"
)

// setupTestStorage creates a bolt storage backed by a temp file
func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "sessions.db")
	s, err := New(context.Background(), dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func testSession(token string, userID int64, ttl time.Duration) *models.Session {
	now := time.Now()
	return &models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

func TestSessionStorage_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	sess := testSession("token-1", 42, time.Hour)
	require.NoError(t, s.SaveSession(ctx, sess))

	retrieved, err := s.GetSession(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, "token-1", retrieved.Token)
	assert.Equal(t, int64(42), retrieved.UserID)
	assert.WithinDuration(t, sess.ExpiresAt, retrieved.ExpiresAt, time.Second)
}

func TestSessionStorage_GetNotFound(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	_, err := s.GetSession(ctx, "unknown")
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestSessionStorage_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	sess := testSession("token-1", 1, time.Hour)
	require.NoError(t, s.SaveSession(ctx, sess))

	require.NoError(t, s.DeleteSession(ctx, "token-1"))

	// Уничтоженный токен больше ничего не аутентифицирует
	_, err := s.GetSession(ctx, "token-1")
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	// Повторное удаление не ошибка
	require.NoError(t, s.DeleteSession(ctx, "token-1"))
	require.NoError(t, s.DeleteSession(ctx, "never-existed"))
}

func TestSessionStorage_DeleteExpiredSessions(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	require.NoError(t, s.SaveSession(ctx, testSession("live-1", 1, time.Hour)))
	require.NoError(t, s.SaveSession(ctx, testSession("expired-1", 2, -time.Minute)))
	require.NoError(t, s.SaveSession(ctx, testSession("expired-2", 3, -time.Hour)))

	deleted, err := s.DeleteExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	_, err = s.GetSession(ctx, "live-1")
	require.NoError(t, err)

	_, err = s.GetSession(ctx, "expired-1")
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}
