package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/todoserver/internal/models"
)

// CreateTask creates a new task for ownerID and returns its assigned ID
func (s *Storage) CreateTask(ctx context.Context, ownerID int64, title string) (int64, error) {
	query := `
		INSERT INTO todos (user_id, title, completed, created_at)
		VALUES (?, ?, 0, ?)
	`

	result, err := s.db.ExecContext(ctx, query, ownerID, title, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return id, nil
}

// ListTasks returns all tasks owned by ownerID, newest-created first
func (s *Storage) ListTasks(ctx context.Context, ownerID int64) ([]*models.Task, error) {
	query := `
		SELECT id, user_id, title, completed, created_at
		FROM todos
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	// Пустой список это валидный результат, поэтому не nil
	tasks := make([]*models.Task, 0)

	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Title,
			&task.Completed,
			&task.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tasks, nil
}

// SetTaskCompleted updates the completed flag of the task with taskID owned
// by ownerID. Returns the number of affected rows.
//
// ID и владелец проверяются одним UPDATE: отдельной проверки владения нет,
// чужую задачу изменить невозможно по построению запроса.
func (s *Storage) SetTaskCompleted(ctx context.Context, taskID, ownerID int64, completed bool) (int64, error) {
	query := `UPDATE todos SET completed = ? WHERE id = ? AND user_id = ?`

	result, err := s.db.ExecContext(ctx, query, completed, taskID, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}

// DeleteTask deletes the task with taskID owned by ownerID.
// Returns the number of affected rows.
func (s *Storage) DeleteTask(ctx context.Context, taskID, ownerID int64) (int64, error) {
	query := `DELETE FROM todos WHERE id = ? AND user_id = ?`

	result, err := s.db.ExecContext(ctx, query, taskID, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}
