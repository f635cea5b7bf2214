package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcooper/taskflow-api/internal/domain"
	"github.com/rcooper/taskflow-api/internal/mocks"
	"github.com/rcooper/taskflow-api/internal/service"
)

func newAnalyticsServiceFixture(t *testing.T) (service.AnalyticsService, *mocks.MockTaskStore, *mocks.MockUserStore) {
	t.Helper()

	tasks := mocks.NewMockTaskStore()
	users := mocks.NewMockUserStore()
	svc, err := service.NewAnalyticsService(tasks, users, nil)
	require.NoError(t, err)
	return svc, tasks, users
}

func TestAnalyticsService_Statistics_Empty(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAnalyticsServiceFixture(t)

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.TotalTasks)
	// No division by zero: an empty system has a 0.0 completion rate.
	assert.Equal(t, 0.0, stats.CompletionRate)
	// Every status and priority is present even with no tasks.
	for _, status := range domain.TaskStatuses() {
		assert.Contains(t, stats.ByStatus, status)
	}
	for _, priority := range domain.TaskPriorities() {
		assert.Contains(t, stats.ByPriority, priority)
	}
}

func TestAnalyticsService_Statistics(t *testing.T) {
	t.Parallel()

	svc, tasks, _ := newAnalyticsServiceFixture(t)
	alice, _ := newEmployee(t, "alice")

	seedAnalyticsTask(t, tasks, alice, domain.TaskStatusDone, domain.TaskPriorityHigh)
	seedAnalyticsTask(t, tasks, alice, domain.TaskStatusTodo, domain.TaskPriorityMedium)
	seedAnalyticsTask(t, tasks, alice, domain.TaskStatusInProgress, domain.TaskPriorityMedium)

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalTasks)
	assert.Equal(t, int64(1), stats.ByStatus[domain.TaskStatusDone])
	assert.Equal(t, int64(1), stats.ByStatus[domain.TaskStatusTodo])
	assert.Equal(t, int64(0), stats.ByStatus[domain.TaskStatusCancelled])
	assert.Equal(t, int64(2), stats.ByPriority[domain.TaskPriorityMedium])
	assert.InDelta(t, 33.33, stats.CompletionRate, 0.01)
}

func TestAnalyticsService_Productivity(t *testing.T) {
	t.Parallel()

	svc, tasks, _ := newAnalyticsServiceFixture(t)
	alice, _ := newEmployee(t, "alice")
	bob, _ := newEmployee(t, "bob")

	for _, status := range []domain.TaskStatus{
		domain.TaskStatusDone,
		domain.TaskStatusDone,
		domain.TaskStatusInProgress,
		domain.TaskStatusTodo,
	} {
		task := seedAnalyticsTask(t, tasks, alice, status, domain.TaskPriorityMedium)
		task.AssignedToID = &bob.ID
	}
	// Unassigned tasks do not count toward anyone's productivity.
	seedAnalyticsTask(t, tasks, alice, domain.TaskStatusTodo, domain.TaskPriorityMedium)

	metrics, err := svc.Productivity(context.Background(), bob.ID)
	require.NoError(t, err)

	assert.Equal(t, bob.ID, metrics.UserID)
	assert.Equal(t, int64(4), metrics.TotalAssigned)
	assert.Equal(t, int64(2), metrics.Completed)
	assert.Equal(t, int64(1), metrics.InProgress)
	assert.Equal(t, int64(1), metrics.Todo)
	assert.InDelta(t, 50.0, metrics.CompletionRate, 0.001)
}

func TestAnalyticsService_Productivity_NoTasks(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAnalyticsServiceFixture(t)
	bob, _ := newEmployee(t, "bob")

	metrics, err := svc.Productivity(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), metrics.TotalAssigned)
	assert.Equal(t, 0.0, metrics.CompletionRate)
}

func TestAnalyticsService_Team(t *testing.T) {
	t.Parallel()

	svc, tasks, users := newAnalyticsServiceFixture(t)
	alice, _ := newEmployee(t, "alice")
	bob, _ := newEmployee(t, "bob")
	users.AddUser(alice)
	users.AddUser(bob)

	done := seedAnalyticsTask(t, tasks, alice, domain.TaskStatusDone, domain.TaskPriorityMedium)
	done.AssignedToID = &bob.ID
	open := seedAnalyticsTask(t, tasks, alice, domain.TaskStatusTodo, domain.TaskPriorityMedium)
	open.AssignedToID = &bob.ID

	team, err := svc.Team(context.Background())
	require.NoError(t, err)
	require.Len(t, team, 2)

	// Users come back in username order from the store.
	assert.Equal(t, "alice", team[0].Username)
	assert.Equal(t, int64(0), team[0].TotalAssigned)
	assert.Equal(t, 0.0, team[0].CompletionRate)

	assert.Equal(t, "bob", team[1].Username)
	assert.Equal(t, int64(2), team[1].TotalAssigned)
	assert.Equal(t, int64(1), team[1].Completed)
	assert.InDelta(t, 50.0, team[1].CompletionRate, 0.001)
}

func seedAnalyticsTask(
	t *testing.T,
	tasks *mocks.MockTaskStore,
	creator *domain.User,
	status domain.TaskStatus,
	priority domain.TaskPriority,
) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(creator.ID, "analytics fixture task", "", priority)
	require.NoError(t, err)
	task.Status = status
	tasks.AddTask(task)
	return task
}
