package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/todoserver/internal/models"
	"github.com/iudanet/todoserver/internal/server/storage"
)

// SaveSession stores a session binding token to user
func (s *Storage) SaveSession(ctx context.Context, session *models.Session) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSessions)
		if bucket == nil {
			return fmt.Errorf("sessions bucket not found")
		}

		// Сериализуем данные в JSON
		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		// Ключ это сам токен
		if err := bucket.Put([]byte(session.Token), data); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		return nil
	})
}

// GetSession retrieves session by token value
func (s *Storage) GetSession(ctx context.Context, token string) (*models.Session, error) {
	var session *models.Session

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSessions)
		if bucket == nil {
			return fmt.Errorf("sessions bucket not found")
		}

		data := bucket.Get([]byte(token))
		if data == nil {
			return storage.ErrSessionNotFound
		}

		session = &models.Session{}
		if err := json.Unmarshal(data, session); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return session, nil
}

// DeleteSession deletes session by token value.
// Deleting an absent token is not an error: logout must be idempotent.
func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSessions)
		if bucket == nil {
			return fmt.Errorf("sessions bucket not found")
		}

		if err := bucket.Delete([]byte(token)); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}

		return nil
	})
}

// DeleteExpiredSessions removes all sessions past their expiry.
// Returns number of deleted sessions.
func (s *Storage) DeleteExpiredSessions(ctx context.Context) (int, error) {
	deleted := 0
	now := time.Now()

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSessions)
		if bucket == nil {
			return fmt.Errorf("sessions bucket not found")
		}

		// Собираем ключи заранее: удалять во время курсора нельзя
		var expired [][]byte

		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			session := &models.Session{}
			if err := json.Unmarshal(v, session); err != nil {
				// Нечитаемая запись тоже подлежит удалению
				expired = append(expired, append([]byte(nil), k...))
				continue
			}
			if session.Expired(now) {
				expired = append(expired, append([]byte(nil), k...))
			}
		}

		for _, k := range expired {
			if err := bucket.Delete(k); err != nil {
				return fmt.Errorf("failed to delete expired session: %w", err)
			}
			deleted++
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	return deleted, nil
}
