package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/todoserver/internal/models"
	"github.com/iudanet/todoserver/internal/server/storage"
)

// CreateUser creates a new user and returns its assigned ID
func (s *Storage) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	query := `
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query, username, passwordHash, time.Now().UTC())
	if err != nil {
		// Проверяем на duplicate username.
		// Уникальность обеспечивает UNIQUE constraint: при двух конкурентных
		// регистрациях с одним username ровно одна проходит.
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.username") {
			return 0, storage.ErrUserAlreadyExists
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return id, nil
}

// GetUserByUsername retrieves user by exact username match
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = ?
	`

	user := &models.User{}

	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE id = ?
	`

	user := &models.User{}

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
