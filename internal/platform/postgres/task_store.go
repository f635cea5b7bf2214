package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rcooper/taskflow-api/internal/domain"
	"github.com/rcooper/taskflow-api/internal/platform/logger"
	"github.com/rcooper/taskflow-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed
// by the caller. If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

const taskColumns = `id, title, description, status, priority, assigned_to, created_by, due_date, created_at, updated_at`

// Create implements store.TaskStore.Create
// It saves a new task to the database, handling domain validation.
// Returns store.ErrInvalidEntity if a referenced user doesn't exist
// (foreign key violation).
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		task.AssignedToID,
		task.CreatedByID,
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()))
			return fmt.Errorf("%w: referenced user not found", store.ErrInvalidEntity)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("created_by", task.CreatedByID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to retrieve task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	return task, nil
}

// Update implements store.TaskStore.Update
// The caller provides the complete task object; updated_at is refreshed here.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5,
		    assigned_to = $6, due_date = $7, updated_at = NOW()
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		task.AssignedToID,
		task.DueDate,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referenced user not found", store.ErrInvalidEntity)
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrTaskNotFound
	}

	log.Info("task updated successfully",
		slog.String("task_id", task.ID.String()))
	return nil
}

// Delete implements store.TaskStore.Delete
// Hard delete. Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrTaskNotFound
	}

	log.Info("task deleted successfully",
		slog.String("task_id", id.String()))
	return nil
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at`
	return s.listQuery(ctx, query)
}

// ListByStatus implements store.TaskStore.ListByStatus
func (s *PostgresTaskStore) ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE status = $1 ORDER BY created_at`
	return s.listQuery(ctx, query, string(status))
}

// ListByAssignee implements store.TaskStore.ListByAssignee
func (s *PostgresTaskStore) ListByAssignee(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE assigned_to = $1 ORDER BY created_at`
	return s.listQuery(ctx, query, userID)
}

// ListByCreator implements store.TaskStore.ListByCreator
func (s *PostgresTaskStore) ListByCreator(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE created_by = $1 ORDER BY created_at`
	return s.listQuery(ctx, query, userID)
}

// ListByAssigneeAndStatus implements store.TaskStore.ListByAssigneeAndStatus
func (s *PostgresTaskStore) ListByAssigneeAndStatus(
	ctx context.Context,
	userID uuid.UUID,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE assigned_to = $1 AND status = $2 ORDER BY created_at`
	return s.listQuery(ctx, query, userID, string(status))
}

// Search implements store.TaskStore.Search
// Case-insensitive substring match over title or description.
func (s *PostgresTaskStore) Search(ctx context.Context, query string) ([]*domain.Task, error) {
	sqlQuery := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
		ORDER BY created_at
	`
	return s.listQuery(ctx, sqlQuery, query)
}

// CountByAssignee implements store.TaskStore.CountByAssignee
// A nil status counts all tasks assigned to the user.
func (s *PostgresTaskStore) CountByAssignee(
	ctx context.Context,
	userID uuid.UUID,
	status *domain.TaskStatus,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		count int64
		err   error
	)
	if status == nil {
		err = s.db.QueryRowContext(
			ctx,
			`SELECT COUNT(*) FROM tasks WHERE assigned_to = $1`,
			userID,
		).Scan(&count)
	} else {
		err = s.db.QueryRowContext(
			ctx,
			`SELECT COUNT(*) FROM tasks WHERE assigned_to = $1 AND status = $2`,
			userID,
			string(*status),
		).Scan(&count)
	}
	if err != nil {
		log.Error("failed to count tasks by assignee",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, err
	}

	return count, nil
}

func (s *PostgresTaskStore) listQuery(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task       domain.Task
		status     string
		priority   string
		assignedTo uuid.NullUUID
		dueDate    sql.NullTime
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&status,
		&priority,
		&assignedTo,
		&task.CreatedByID,
		&dueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)
	if assignedTo.Valid {
		id := assignedTo.UUID
		task.AssignedToID = &id
	}
	if dueDate.Valid {
		t := dueDate.Time
		task.DueDate = &t
	}

	return &task, nil
}
