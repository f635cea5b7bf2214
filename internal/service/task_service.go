package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rcooper/taskflow-api/internal/domain"
	"github.com/rcooper/taskflow-api/internal/platform/metrics"
	"github.com/rcooper/taskflow-api/internal/store"
)

// CreateTaskInput carries the caller-supplied fields for a new task.
// Priority defaults to MEDIUM when nil.
type CreateTaskInput struct {
	Title        string
	Description  string
	Priority     *domain.TaskPriority
	AssignedToID *uuid.UUID
	DueDate      *time.Time
}

// UpdateTaskInput carries a partial update. Nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *domain.TaskPriority
	DueDate     *time.Time
}

// TaskFilter narrows a task listing. When both Status and AssignedToID are
// set, the combined filter wins; otherwise AssignedToID, then CreatedByID,
// then Status, then an unfiltered listing.
type TaskFilter struct {
	Status       *domain.TaskStatus
	AssignedToID *uuid.UUID
	CreatedByID  *uuid.UUID
}

// TaskService provides task lifecycle operations with authorization and
// notification fan-out.
type TaskService interface {
	// Create creates a new task owned by the principal. If an assignee is
	// given, they receive an assignment notification in the same transaction.
	Create(ctx context.Context, principal *domain.Principal, input CreateTaskInput) (*domain.Task, error)

	// Get retrieves a task by its ID.
	Get(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update applies a partial update. Only the task's creator, an admin, or
	// a manager may update; the current assignee is notified.
	Update(ctx context.Context, principal *domain.Principal, id uuid.UUID, input UpdateTaskInput) (*domain.Task, error)

	// Delete removes a task. Only the task's creator, an admin, or a manager
	// may delete. No notification is emitted.
	Delete(ctx context.Context, principal *domain.Principal, id uuid.UUID) error

	// Assign sets the task's assignee, replacing any previous one. The new
	// assignee is notified.
	Assign(ctx context.Context, principal *domain.Principal, id, userID uuid.UUID) (*domain.Task, error)

	// UpdateStatus transitions the task to a new status. The creator, the
	// assignee, an admin, or a manager may change status. The notification
	// emitted depends on the new status.
	UpdateStatus(ctx context.Context, principal *domain.Principal, id uuid.UUID, status domain.TaskStatus) (*domain.Task, error)

	// List returns tasks matching the filter, most specific criteria first.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// Search returns tasks whose title or description contains the query,
	// case-insensitively. A blank query returns all tasks.
	Search(ctx context.Context, query string) ([]*domain.Task, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore         store.TaskStore
	userStore         store.UserStore
	notificationStore store.NotificationStore
	transactor        store.Transactor
	metrics           metrics.Recorder
	logger            *slog.Logger
}

// Ensure taskServiceImpl implements TaskService interface
var _ TaskService = (*taskServiceImpl)(nil)

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskStore store.TaskStore,
	userStore store.UserStore,
	notificationStore store.NotificationStore,
	transactor store.Transactor,
	recorder metrics.Recorder,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "taskStore cannot be nil"}
	}
	if userStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "userStore cannot be nil"}
	}
	if notificationStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "notificationStore cannot be nil"}
	}
	if transactor == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "transactor cannot be nil"}
	}
	if recorder == nil {
		recorder = metrics.NopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore:         taskStore,
		userStore:         userStore,
		notificationStore: notificationStore,
		transactor:        transactor,
		metrics:           recorder,
		logger:            logger.With("component", "task_service"),
	}, nil
}

// canModify reports whether the principal may update or delete the task.
func canModify(principal *domain.Principal, task *domain.Task) bool {
	return task.IsCreator(principal.ID) || principal.IsAdminOrManager()
}

// canChangeStatus reports whether the principal may change the task's status.
// The assignee may move their own task in addition to the modifiers.
func canChangeStatus(principal *domain.Principal, task *domain.Task) bool {
	return canModify(principal, task) || task.IsAssignee(principal.ID)
}

// Create creates a new task and, when an assignee is set, an assignment
// notification for them. Both writes happen in one transaction.
func (s *taskServiceImpl) Create(
	ctx context.Context,
	principal *domain.Principal,
	input CreateTaskInput,
) (*domain.Task, error) {
	priority := domain.TaskPriorityMedium
	if input.Priority != nil {
		priority = *input.Priority
	}

	task, err := domain.NewTask(principal.ID, input.Title, input.Description, priority)
	if err != nil {
		s.logger.Warn("failed to create task object",
			"error", err,
			"user_id", principal.ID)
		return nil, NewServiceError("create_task", "invalid task data", err)
	}
	task.DueDate = input.DueDate

	if input.AssignedToID != nil {
		if _, err := s.userStore.GetByID(ctx, *input.AssignedToID); err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, NewServiceError("create_task", "failed to look up assignee", err)
		}
		task.AssignedToID = input.AssignedToID
	}

	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.taskStore.WithTx(tx)
		if err := txTasks.Create(ctx, task); err != nil {
			return NewServiceError("create_task", "failed to save task", err)
		}

		if task.AssignedToID != nil {
			message := fmt.Sprintf("You have been assigned a new task: %s", task.Title)
			if err := s.notify(ctx, tx, *task.AssignedToID, message, domain.NotificationTaskAssigned); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordTaskCreated()
	s.logger.Info("task created",
		"task_id", task.ID,
		"created_by", principal.ID,
		"assigned", task.AssignedToID != nil)
	return task, nil
}

// Get retrieves a task by its ID.
func (s *taskServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, NewServiceError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

// Update applies the non-nil fields of the input and notifies the current
// assignee that the task changed.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	principal *domain.Principal,
	id uuid.UUID,
	input UpdateTaskInput,
) (*domain.Task, error) {
	var updated *domain.Task

	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.taskStore.WithTx(tx)

		task, err := txTasks.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				return ErrTaskNotFound
			}
			return NewServiceError("update_task", "failed to retrieve task", err)
		}

		if !canModify(principal, task) {
			s.logger.Warn("task update denied",
				"task_id", id,
				"user_id", principal.ID)
			return ErrPermissionDenied
		}

		if input.Title != nil {
			task.Title = *input.Title
		}
		if input.Description != nil {
			task.Description = *input.Description
		}
		if input.Priority != nil {
			task.Priority = *input.Priority
		}
		if input.DueDate != nil {
			task.DueDate = input.DueDate
		}

		if err := task.Validate(); err != nil {
			return NewServiceError("update_task", "invalid task data", err)
		}

		if err := txTasks.Update(ctx, task); err != nil {
			return NewServiceError("update_task", "failed to save task", err)
		}

		if task.AssignedToID != nil {
			message := fmt.Sprintf("Task updated: %s", task.Title)
			if err := s.notify(ctx, tx, *task.AssignedToID, message, domain.NotificationTaskUpdated); err != nil {
				return err
			}
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task updated",
		"task_id", id,
		"user_id", principal.ID)
	return updated, nil
}

// Delete removes a task after an authorization check. Deletion emits no
// notification.
func (s *taskServiceImpl) Delete(
	ctx context.Context,
	principal *domain.Principal,
	id uuid.UUID,
) error {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return NewServiceError("delete_task", "failed to retrieve task", err)
	}

	if !canModify(principal, task) {
		s.logger.Warn("task delete denied",
			"task_id", id,
			"user_id", principal.ID)
		return ErrPermissionDenied
	}

	if err := s.taskStore.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return NewServiceError("delete_task", "failed to delete task", err)
	}

	s.metrics.RecordTaskDeleted()
	s.logger.Info("task deleted",
		"task_id", id,
		"user_id", principal.ID)
	return nil
}

// Assign sets the task's assignee, replacing any previous assignee, and
// notifies the new one.
func (s *taskServiceImpl) Assign(
	ctx context.Context,
	principal *domain.Principal,
	id, userID uuid.UUID,
) (*domain.Task, error) {
	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, NewServiceError("assign_task", "failed to look up assignee", err)
	}

	var updated *domain.Task

	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.taskStore.WithTx(tx)

		task, err := txTasks.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				return ErrTaskNotFound
			}
			return NewServiceError("assign_task", "failed to retrieve task", err)
		}

		task.AssignedToID = &userID
		if err := txTasks.Update(ctx, task); err != nil {
			return NewServiceError("assign_task", "failed to save task", err)
		}

		message := fmt.Sprintf("You have been assigned to task: %s", task.Title)
		if err := s.notify(ctx, tx, userID, message, domain.NotificationTaskAssigned); err != nil {
			return err
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task assigned",
		"task_id", id,
		"assignee_id", userID,
		"assigned_by", principal.ID)
	return updated, nil
}

// UpdateStatus transitions the task to the given status and emits a
// notification determined by the new status: completion notifies the creator,
// cancellation notifies the assignee, any other transition notifies the
// assignee with the old and new status.
func (s *taskServiceImpl) UpdateStatus(
	ctx context.Context,
	principal *domain.Principal,
	id uuid.UUID,
	status domain.TaskStatus,
) (*domain.Task, error) {
	if err := status.Validate(); err != nil {
		return nil, NewServiceError("update_task_status", "invalid status", err)
	}

	var updated *domain.Task

	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.taskStore.WithTx(tx)

		task, err := txTasks.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				return ErrTaskNotFound
			}
			return NewServiceError("update_task_status", "failed to retrieve task", err)
		}

		if !canChangeStatus(principal, task) {
			s.logger.Warn("task status change denied",
				"task_id", id,
				"user_id", principal.ID)
			return ErrPermissionDenied
		}

		oldStatus := task.Status
		task.Status = status
		if err := txTasks.Update(ctx, task); err != nil {
			return NewServiceError("update_task_status", "failed to save task", err)
		}

		switch status {
		case domain.TaskStatusDone:
			message := fmt.Sprintf("Task completed: %s", task.Title)
			if err := s.notify(ctx, tx, task.CreatedByID, message, domain.NotificationTaskCompleted); err != nil {
				return err
			}
		case domain.TaskStatusCancelled:
			if task.AssignedToID != nil {
				message := fmt.Sprintf("Task cancelled: %s", task.Title)
				if err := s.notify(ctx, tx, *task.AssignedToID, message, domain.NotificationTaskCancelled); err != nil {
					return err
				}
			}
		default:
			if task.AssignedToID != nil {
				message := fmt.Sprintf("Task status changed from %s to %s: %s", oldStatus, status, task.Title)
				if err := s.notify(ctx, tx, *task.AssignedToID, message, domain.NotificationTaskUpdated); err != nil {
					return err
				}
			}
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordTaskStatusChange(string(status))
	s.logger.Info("task status updated",
		"task_id", id,
		"status", status,
		"user_id", principal.ID)
	return updated, nil
}

// List returns tasks matching the filter. Combined assignee-and-status takes
// precedence, then assignee, then creator, then status alone. A filter that
// references a user who does not exist is an error, not an empty listing.
func (s *taskServiceImpl) List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error) {
	var (
		tasks []*domain.Task
		err   error
	)

	switch {
	case filter.AssignedToID != nil && filter.Status != nil:
		if err := s.requireUser(ctx, *filter.AssignedToID); err != nil {
			return nil, err
		}
		tasks, err = s.taskStore.ListByAssigneeAndStatus(ctx, *filter.AssignedToID, *filter.Status)
	case filter.AssignedToID != nil:
		if err := s.requireUser(ctx, *filter.AssignedToID); err != nil {
			return nil, err
		}
		tasks, err = s.taskStore.ListByAssignee(ctx, *filter.AssignedToID)
	case filter.CreatedByID != nil:
		if err := s.requireUser(ctx, *filter.CreatedByID); err != nil {
			return nil, err
		}
		tasks, err = s.taskStore.ListByCreator(ctx, *filter.CreatedByID)
	case filter.Status != nil:
		tasks, err = s.taskStore.ListByStatus(ctx, *filter.Status)
	default:
		tasks, err = s.taskStore.List(ctx)
	}
	if err != nil {
		return nil, NewServiceError("list_tasks", "failed to list tasks", err)
	}

	return tasks, nil
}

// requireUser verifies that a user referenced by a listing filter exists.
func (s *taskServiceImpl) requireUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return NewServiceError("list_tasks", "failed to look up user", err)
	}
	return nil
}

// Search returns tasks whose title or description matches the query. A blank
// query falls back to the full listing.
func (s *taskServiceImpl) Search(ctx context.Context, query string) ([]*domain.Task, error) {
	if query == "" {
		return s.List(ctx, TaskFilter{})
	}

	tasks, err := s.taskStore.Search(ctx, query)
	if err != nil {
		return nil, NewServiceError("search_tasks", "failed to search tasks", err)
	}
	return tasks, nil
}

// notify writes a notification inside the surrounding transaction and records
// the emission.
func (s *taskServiceImpl) notify(
	ctx context.Context,
	tx *sql.Tx,
	recipientID uuid.UUID,
	message string,
	notifType domain.NotificationType,
) error {
	notification, err := domain.NewNotification(recipientID, message, notifType)
	if err != nil {
		return NewServiceError("notify", "invalid notification", err)
	}

	if err := s.notificationStore.WithTx(tx).Create(ctx, notification); err != nil {
		return NewServiceError("notify", "failed to save notification", err)
	}

	s.metrics.RecordNotificationEmitted(string(notifType))
	return nil
}
