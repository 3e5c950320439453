package storage

import (
	"context"

	"github.com/iudanet/todoserver/internal/models"
)

// UserStorage defines interface for user credential persistence.
// No update/delete operations: accounts are immutable once created.
type UserStorage interface {
	// CreateUser persists a new user and returns its assigned ID.
	// passwordHash is an already hashed password, never the plaintext.
	// Returns ErrUserAlreadyExists if the username is taken; uniqueness
	// is enforced by the storage layer, not by a prior lookup.
	CreateUser(ctx context.Context, username, passwordHash string) (int64, error)

	// GetUserByUsername retrieves user by exact username match.
	// Returns ErrUserNotFound if user doesn't exist.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves user by ID.
	// Returns ErrUserNotFound if user doesn't exist.
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
}
