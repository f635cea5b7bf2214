package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task validation errors.
var (
	ErrTaskIDEmpty        = errors.New("task ID cannot be empty")
	ErrTaskCreatorEmpty   = errors.New("task creator cannot be empty")
	ErrTaskTitleTooShort  = errors.New("task title must be at least 3 characters long")
	ErrTaskTitleTooLong   = errors.New("task title must be at most 200 characters long")
	ErrTaskDescTooLong    = errors.New("task description must be at most 1000 characters long")
)

// TaskStatus is the lifecycle state of a task. The values are ordered by
// convention only; any status may move to any other, including back.
type TaskStatus string

// Task statuses.
const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

// TaskStatuses lists all valid statuses, in conventional order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusCancelled}
}

// ParseTaskStatus converts a string into a TaskStatus, case-insensitively.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(strings.ToUpper(s)) {
	case TaskStatusTodo:
		return TaskStatusTodo, nil
	case TaskStatusInProgress:
		return TaskStatusInProgress, nil
	case TaskStatusDone:
		return TaskStatusDone, nil
	case TaskStatusCancelled:
		return TaskStatusCancelled, nil
	default:
		return "", ErrInvalidTaskStatus
	}
}

// Validate checks that the status is one of the recognized values.
func (s TaskStatus) Validate() error {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusCancelled:
		return nil
	default:
		return ErrInvalidTaskStatus
	}
}

// TaskPriority is the urgency classification of a task.
type TaskPriority string

// Task priorities.
const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityUrgent TaskPriority = "URGENT"
)

// TaskPriorities lists all valid priorities.
func TaskPriorities() []TaskPriority {
	return []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent}
}

// ParseTaskPriority converts a string into a TaskPriority, case-insensitively.
func ParseTaskPriority(s string) (TaskPriority, error) {
	switch TaskPriority(strings.ToUpper(s)) {
	case TaskPriorityLow:
		return TaskPriorityLow, nil
	case TaskPriorityMedium:
		return TaskPriorityMedium, nil
	case TaskPriorityHigh:
		return TaskPriorityHigh, nil
	case TaskPriorityUrgent:
		return TaskPriorityUrgent, nil
	default:
		return "", ErrInvalidTaskPriority
	}
}

// Validate checks that the priority is one of the recognized values.
func (p TaskPriority) Validate() error {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return nil
	default:
		return ErrInvalidTaskPriority
	}
}

// Task is a unit of work created by one user and optionally assigned to
// another. CreatedByID is set exactly once, at creation, and never changes.
// AssignedToID may be nil (unassigned) or reference any valid user.
type Task struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	AssignedToID *uuid.UUID   `json:"assigned_to_id,omitempty"`
	CreatedByID  uuid.UUID    `json:"created_by_id"`
	DueDate      *time.Time   `json:"due_date,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewTask creates a new Task owned by the given creator. Status starts at
// TODO; an empty priority defaults to MEDIUM. Returns an error if
// validation fails.
func NewTask(createdBy uuid.UUID, title, description string, priority TaskPriority) (*Task, error) {
	if priority == "" {
		priority = TaskPriorityMedium
	}

	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      TaskStatusTodo,
		Priority:    priority,
		CreatedByID: createdBy,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}
	if t.CreatedByID == uuid.Nil {
		return ErrTaskCreatorEmpty
	}
	if len(t.Title) < 3 {
		return ErrTaskTitleTooShort
	}
	if len(t.Title) > 200 {
		return ErrTaskTitleTooLong
	}
	if len(t.Description) > 1000 {
		return ErrTaskDescTooLong
	}
	if err := t.Status.Validate(); err != nil {
		return err
	}
	return t.Priority.Validate()
}

// IsCreator reports whether the given user created this task.
func (t *Task) IsCreator(userID uuid.UUID) bool {
	return t.CreatedByID == userID
}

// IsAssignee reports whether the task is currently assigned to the given user.
func (t *Task) IsAssignee(userID uuid.UUID) bool {
	return t.AssignedToID != nil && *t.AssignedToID == userID
}
