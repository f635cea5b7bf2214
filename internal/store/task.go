package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rcooper/taskflow-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if a referenced user does not exist.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update modifies an existing task. The caller provides the complete
	// task object; UpdatedAt is refreshed by the store.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID. Hard delete.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves all tasks in insertion order.
	List(ctx context.Context) ([]*domain.Task, error)

	// ListByStatus retrieves all tasks with the given status.
	ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)

	// ListByAssignee retrieves all tasks assigned to the given user.
	ListByAssignee(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// ListByCreator retrieves all tasks created by the given user.
	ListByCreator(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// ListByAssigneeAndStatus retrieves all tasks assigned to the given user
	// that carry the given status.
	ListByAssigneeAndStatus(ctx context.Context, userID uuid.UUID, status domain.TaskStatus) ([]*domain.Task, error)

	// Search retrieves tasks whose title or description contains the query,
	// case-insensitively. No ranking; store order applies.
	Search(ctx context.Context, query string) ([]*domain.Task, error)

	// CountByAssignee counts tasks assigned to the given user, optionally
	// restricted to a status. A nil status counts all assigned tasks.
	CountByAssignee(ctx context.Context, userID uuid.UUID, status *domain.TaskStatus) (int64, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
