package storage

import (
	"context"

	"github.com/iudanet/todoserver/internal/models"
)

// SessionStorage defines interface for session token persistence
type SessionStorage interface {
	// SaveSession stores a new session binding token to user
	SaveSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves session by token value
	// Returns ErrSessionNotFound if the token doesn't exist
	GetSession(ctx context.Context, token string) (*models.Session, error)

	// DeleteSession deletes session by token value.
	// Deleting an absent token is not an error.
	DeleteSession(ctx context.Context, token string) error

	// DeleteExpiredSessions removes all sessions past their expiry.
	// Returns number of deleted sessions.
	DeleteExpiredSessions(ctx context.Context) (int, error)
}
