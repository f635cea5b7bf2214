package mocks

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/rcooper/taskflow-api/internal/domain"
	"github.com/rcooper/taskflow-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
// Tasks are kept in insertion order so listings are deterministic.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, task *domain.Task) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	UpdateFn  func(ctx context.Context, task *domain.Task) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	Tasks []*domain.Task

	// Errors returned by the default implementations when set
	CreateError error
	GetError    error
	UpdateError error
	DeleteError error
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{}
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// AddTask seeds a task into the default backing slice.
func (m *MockTaskStore) AddTask(task *domain.Task) {
	m.Tasks = append(m.Tasks, task)
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	m.Tasks = append(m.Tasks, task)
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.GetError != nil {
		return nil, m.GetError
	}

	for _, task := range m.Tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return nil, store.ErrTaskNotFound
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	if m.UpdateError != nil {
		return m.UpdateError
	}

	for i, existing := range m.Tasks {
		if existing.ID == task.ID {
			m.Tasks[i] = task
			return nil
		}
	}
	return store.ErrTaskNotFound
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if m.DeleteError != nil {
		return m.DeleteError
	}

	for i, task := range m.Tasks {
		if task.ID == id {
			m.Tasks = append(m.Tasks[:i], m.Tasks[i+1:]...)
			return nil
		}
	}
	return store.ErrTaskNotFound
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	return m.filter(func(*domain.Task) bool { return true }), nil
}

// ListByStatus implements the TaskStore interface
func (m *MockTaskStore) ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	return m.filter(func(t *domain.Task) bool { return t.Status == status }), nil
}

// ListByAssignee implements the TaskStore interface
func (m *MockTaskStore) ListByAssignee(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	return m.filter(func(t *domain.Task) bool {
		return t.AssignedToID != nil && *t.AssignedToID == userID
	}), nil
}

// ListByCreator implements the TaskStore interface
func (m *MockTaskStore) ListByCreator(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	return m.filter(func(t *domain.Task) bool { return t.CreatedByID == userID }), nil
}

// ListByAssigneeAndStatus implements the TaskStore interface
func (m *MockTaskStore) ListByAssigneeAndStatus(
	ctx context.Context,
	userID uuid.UUID,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	return m.filter(func(t *domain.Task) bool {
		return t.AssignedToID != nil && *t.AssignedToID == userID && t.Status == status
	}), nil
}

// Search implements the TaskStore interface
func (m *MockTaskStore) Search(ctx context.Context, query string) ([]*domain.Task, error) {
	lowered := strings.ToLower(query)
	return m.filter(func(t *domain.Task) bool {
		return strings.Contains(strings.ToLower(t.Title), lowered) ||
			strings.Contains(strings.ToLower(t.Description), lowered)
	}), nil
}

// CountByAssignee implements the TaskStore interface
func (m *MockTaskStore) CountByAssignee(
	ctx context.Context,
	userID uuid.UUID,
	status *domain.TaskStatus,
) (int64, error) {
	matches := m.filter(func(t *domain.Task) bool {
		if t.AssignedToID == nil || *t.AssignedToID != userID {
			return false
		}
		return status == nil || t.Status == *status
	})
	return int64(len(matches)), nil
}

// WithTx implements the TaskStore interface. The mock is not transactional,
// so it returns itself.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

func (m *MockTaskStore) filter(keep func(*domain.Task) bool) []*domain.Task {
	var tasks []*domain.Task
	for _, task := range m.Tasks {
		if keep(task) {
			tasks = append(tasks, task)
		}
	}
	return tasks
}
