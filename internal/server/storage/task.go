package storage

import (
	"context"

	"github.com/iudanet/todoserver/internal/models"
)

// TaskStorage defines interface for task persistence.
//
// Every mutation is owner-scoped: the task ID and the owner ID are combined
// in a single filtered statement, so a task can never be read or modified
// through another user's ID. Affected-row counts of 0 mean "not found or not
// owned", indistinguishably.
type TaskStorage interface {
	// CreateTask persists a new task for ownerID and returns its assigned ID.
	CreateTask(ctx context.Context, ownerID int64, title string) (int64, error)

	// ListTasks returns all tasks owned by ownerID, newest-created first.
	// Returns an empty slice (not an error) if the user has no tasks.
	ListTasks(ctx context.Context, ownerID int64) ([]*models.Task, error)

	// SetTaskCompleted updates the completed flag of the task with taskID
	// owned by ownerID. Returns the number of affected rows (0 or 1).
	SetTaskCompleted(ctx context.Context, taskID, ownerID int64, completed bool) (int64, error)

	// DeleteTask deletes the task with taskID owned by ownerID.
	// Returns the number of affected rows (0 or 1).
	DeleteTask(ctx context.Context, taskID, ownerID int64) (int64, error)
}
