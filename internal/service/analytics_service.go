package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rcooper/taskflow-api/internal/domain"
	"github.com/rcooper/taskflow-api/internal/store"
)

// TaskStatistics summarizes the whole task table: counts by status and
// priority plus the overall completion rate.
type TaskStatistics struct {
	TotalTasks     int64                         `json:"total_tasks"`
	ByStatus       map[domain.TaskStatus]int64   `json:"by_status"`
	ByPriority     map[domain.TaskPriority]int64 `json:"by_priority"`
	CompletionRate float64                       `json:"completion_rate"`
}

// ProductivityMetrics summarizes one user's assigned workload.
type ProductivityMetrics struct {
	UserID         uuid.UUID `json:"user_id"`
	TotalAssigned  int64     `json:"total_assigned"`
	Completed      int64     `json:"completed"`
	InProgress     int64     `json:"in_progress"`
	Todo           int64     `json:"todo"`
	CompletionRate float64   `json:"completion_rate"`
}

// TeamMemberStats is one row of the team-wide productivity report.
type TeamMemberStats struct {
	UserID         uuid.UUID `json:"user_id"`
	Username       string    `json:"username"`
	TotalAssigned  int64     `json:"total_assigned"`
	Completed      int64     `json:"completed"`
	CompletionRate float64   `json:"completion_rate"`
}

// AnalyticsService provides read-only aggregations over tasks and users.
type AnalyticsService interface {
	// Statistics returns system-wide task counts and the overall completion
	// rate.
	Statistics(ctx context.Context) (*TaskStatistics, error)

	// Productivity returns workload metrics for a single user's assigned
	// tasks.
	Productivity(ctx context.Context, userID uuid.UUID) (*ProductivityMetrics, error)

	// Team returns per-user assignment counts and completion rates across
	// all users.
	Team(ctx context.Context) ([]*TeamMemberStats, error)
}

// analyticsServiceImpl implements the AnalyticsService interface
type analyticsServiceImpl struct {
	taskStore store.TaskStore
	userStore store.UserStore
	logger    *slog.Logger
}

// Ensure analyticsServiceImpl implements AnalyticsService interface
var _ AnalyticsService = (*analyticsServiceImpl)(nil)

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(
	taskStore store.TaskStore,
	userStore store.UserStore,
	logger *slog.Logger,
) (AnalyticsService, error) {
	if taskStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "taskStore cannot be nil"}
	}
	if userStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "userStore cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &analyticsServiceImpl{
		taskStore: taskStore,
		userStore: userStore,
		logger:    logger.With("component", "analytics_service"),
	}, nil
}

// completionRate computes done/total as a percentage, returning 0.0 when
// total is zero.
func completionRate(done, total int64) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(done) / float64(total) * 100.0
}

// Statistics scans all tasks and tallies counts by status and priority.
// A full scan is acceptable at this system's scale.
func (s *analyticsServiceImpl) Statistics(ctx context.Context) (*TaskStatistics, error) {
	tasks, err := s.taskStore.List(ctx)
	if err != nil {
		return nil, NewServiceError("task_statistics", "failed to list tasks", err)
	}

	stats := &TaskStatistics{
		TotalTasks: int64(len(tasks)),
		ByStatus:   make(map[domain.TaskStatus]int64),
		ByPriority: make(map[domain.TaskPriority]int64),
	}
	for _, status := range domain.TaskStatuses() {
		stats.ByStatus[status] = 0
	}
	for _, priority := range domain.TaskPriorities() {
		stats.ByPriority[priority] = 0
	}

	for _, task := range tasks {
		stats.ByStatus[task.Status]++
		stats.ByPriority[task.Priority]++
	}
	stats.CompletionRate = completionRate(stats.ByStatus[domain.TaskStatusDone], stats.TotalTasks)

	return stats, nil
}

// Productivity computes a single user's workload using count queries rather
// than a scan.
func (s *analyticsServiceImpl) Productivity(
	ctx context.Context,
	userID uuid.UUID,
) (*ProductivityMetrics, error) {
	total, err := s.taskStore.CountByAssignee(ctx, userID, nil)
	if err != nil {
		return nil, NewServiceError("user_productivity", "failed to count assigned tasks", err)
	}

	counts := make(map[domain.TaskStatus]int64, 3)
	for _, status := range []domain.TaskStatus{
		domain.TaskStatusDone,
		domain.TaskStatusInProgress,
		domain.TaskStatusTodo,
	} {
		st := status
		count, err := s.taskStore.CountByAssignee(ctx, userID, &st)
		if err != nil {
			return nil, NewServiceError("user_productivity", "failed to count assigned tasks", err)
		}
		counts[status] = count
	}

	return &ProductivityMetrics{
		UserID:         userID,
		TotalAssigned:  total,
		Completed:      counts[domain.TaskStatusDone],
		InProgress:     counts[domain.TaskStatusInProgress],
		Todo:           counts[domain.TaskStatusTodo],
		CompletionRate: completionRate(counts[domain.TaskStatusDone], total),
	}, nil
}

// Team computes assignment counts and completion rates for every user.
func (s *analyticsServiceImpl) Team(ctx context.Context) ([]*TeamMemberStats, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, NewServiceError("team_analytics", "failed to list users", err)
	}

	team := make([]*TeamMemberStats, 0, len(users))
	for _, user := range users {
		total, err := s.taskStore.CountByAssignee(ctx, user.ID, nil)
		if err != nil {
			return nil, NewServiceError("team_analytics", "failed to count assigned tasks", err)
		}

		done := domain.TaskStatusDone
		completed, err := s.taskStore.CountByAssignee(ctx, user.ID, &done)
		if err != nil {
			return nil, NewServiceError("team_analytics", "failed to count completed tasks", err)
		}

		team = append(team, &TeamMemberStats{
			UserID:         user.ID,
			Username:       user.Username,
			TotalAssigned:  total,
			Completed:      completed,
			CompletionRate: completionRate(completed, total),
		})
	}

	return team, nil
}
