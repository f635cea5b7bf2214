package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcooper/taskflow-api/internal/domain"
	"github.com/rcooper/taskflow-api/internal/mocks"
	"github.com/rcooper/taskflow-api/internal/service"
)

// taskServiceFixture bundles a TaskService with its backing mocks.
type taskServiceFixture struct {
	svc           service.TaskService
	tasks         *mocks.MockTaskStore
	users         *mocks.MockUserStore
	notifications *mocks.MockNotificationStore
	transactor    *mocks.MockTransactor
}

func newTaskServiceFixture(t *testing.T) *taskServiceFixture {
	t.Helper()

	tasks := mocks.NewMockTaskStore()
	users := mocks.NewMockUserStore()
	notifications := mocks.NewMockNotificationStore()
	transactor := mocks.NewMockTransactor()

	svc, err := service.NewTaskService(tasks, users, notifications, transactor, nil, nil)
	require.NoError(t, err)

	return &taskServiceFixture{
		svc:           svc,
		tasks:         tasks,
		users:         users,
		notifications: notifications,
		transactor:    transactor,
	}
}

func newEmployee(t *testing.T, username string) (*domain.User, *domain.Principal) {
	t.Helper()

	user, err := domain.NewUser(username, username+"@example.com", "password123")
	require.NoError(t, err)
	user.HashedPassword = "hashed"
	user.Password = ""

	principal := user.Principal()
	return user, &principal
}

func newManager(t *testing.T, username string) (*domain.User, *domain.Principal) {
	t.Helper()

	user, principal := newEmployee(t, username)
	user.Roles = []domain.Role{domain.RoleManager}
	refreshed := user.Principal()
	*principal = refreshed
	return user, principal
}

func seedTask(t *testing.T, f *taskServiceFixture, creator *domain.User, title string) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(creator.ID, title, "", domain.TaskPriorityMedium)
	require.NoError(t, err)
	f.tasks.AddTask(task)
	return task
}

func TestTaskService_Create_Defaults(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	_, principal := newEmployee(t, "alice")

	task, err := f.svc.Create(context.Background(), principal, service.CreateTaskInput{
		Title:       "Write onboarding docs",
		Description: "Cover setup and deploy",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TaskStatusTodo, task.Status)
	assert.Equal(t, domain.TaskPriorityMedium, task.Priority)
	assert.Equal(t, principal.ID, task.CreatedByID)
	assert.Nil(t, task.AssignedToID)

	// No assignee, no notification.
	assert.Empty(t, f.notifications.Notifications)
	assert.Equal(t, 1, f.transactor.Calls)
}

func TestTaskService_Create_WithAssigneeNotifies(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	_, principal := newEmployee(t, "alice")
	assignee, _ := newEmployee(t, "bob")
	f.users.AddUser(assignee)

	high := domain.TaskPriorityHigh
	task, err := f.svc.Create(context.Background(), principal, service.CreateTaskInput{
		Title:        "Review deployment checklist",
		Priority:     &high,
		AssignedToID: &assignee.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, task.AssignedToID)
	assert.Equal(t, assignee.ID, *task.AssignedToID)
	assert.Equal(t, domain.TaskPriorityHigh, task.Priority)

	notifications := f.notifications.ForRecipient(assignee.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotificationTaskAssigned, notifications[0].Type)
	assert.Equal(t, "You have been assigned a new task: Review deployment checklist", notifications[0].Message)
	assert.False(t, notifications[0].IsRead)
}

func TestTaskService_Create_UnknownAssignee(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	_, principal := newEmployee(t, "alice")

	missing := uuid.New()
	_, err := f.svc.Create(context.Background(), principal, service.CreateTaskInput{
		Title:        "Triage incoming bugs",
		AssignedToID: &missing,
	})
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	assert.Empty(t, f.tasks.Tasks)
	assert.Empty(t, f.notifications.Notifications)
}

func TestTaskService_Create_InvalidTitle(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	_, principal := newEmployee(t, "alice")

	_, err := f.svc.Create(context.Background(), principal, service.CreateTaskInput{Title: "ab"})
	assert.ErrorIs(t, err, domain.ErrTaskTitleTooShort)
}

func TestTaskService_Update_PartialFields(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	creator, principal := newEmployee(t, "alice")
	task := seedTask(t, f, creator, "Initial title")
	task.Description = "initial description"

	newTitle := "Refined title"
	urgent := domain.TaskPriorityUrgent
	updated, err := f.svc.Update(context.Background(), principal, task.ID, service.UpdateTaskInput{
		Title:    &newTitle,
		Priority: &urgent,
	})
	require.NoError(t, err)

	assert.Equal(t, "Refined title", updated.Title)
	assert.Equal(t, domain.TaskPriorityUrgent, updated.Priority)
	// Fields not present in the input are untouched.
	assert.Equal(t, "initial description", updated.Description)
	assert.Equal(t, domain.TaskStatusTodo, updated.Status)
}

func TestTaskService_Update_NotifiesAssignee(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	creator, principal := newEmployee(t, "alice")
	assignee, _ := newEmployee(t, "bob")
	task := seedTask(t, f, creator, "Ship the release")
	task.AssignedToID = &assignee.ID

	description := "include the migration notes"
	_, err := f.svc.Update(context.Background(), principal, task.ID, service.UpdateTaskInput{
		Description: &description,
	})
	require.NoError(t, err)

	notifications := f.notifications.ForRecipient(assignee.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotificationTaskUpdated, notifications[0].Type)
	assert.Equal(t, "Task updated: Ship the release", notifications[0].Message)
}

func TestTaskService_Update_PermissionDenied(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	creator, _ := newEmployee(t, "alice")
	_, stranger := newEmployee(t, "mallory")
	task := seedTask(t, f, creator, "Original title")

	newTitle := "Hijacked title"
	_, err := f.svc.Update(context.Background(), stranger, task.ID, service.UpdateTaskInput{
		Title: &newTitle,
	})
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	// The stored task is unchanged and nothing was emitted.
	stored, getErr := f.tasks.GetByID(context.Background(), task.ID)
	require.NoError(t, getErr)
	assert.Equal(t, "Original title", stored.Title)
	assert.Empty(t, f.notifications.Notifications)
}

func TestTaskService_Update_ManagerMayEditOthersTasks(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	creator, _ := newEmployee(t, "alice")
	_, manager := newManager(t, "meredith")
	task := seedTask(t, f, creator, "Quarterly report")

	newTitle := "Quarterly report (final)"
	updated, err := f.svc.Update(context.Background(), manager, task.ID, service.UpdateTaskInput{
		Title: &newTitle,
	})
	require.NoError(t, err)
	assert.Equal(t, "Quarterly report (final)", updated.Title)
}

func TestTaskService_Update_NotFound(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	_, principal := newEmployee(t, "alice")

	newTitle := "Anything"
	_, err := f.svc.Update(context.Background(), principal, uuid.New(), service.UpdateTaskInput{
		Title: &newTitle,
	})
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
}

func TestTaskService_Delete(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	creator, principal := newEmployee(t, "alice")
	assignee, _ := newEmployee(t, "bob")
	task := seedTask(t, f, creator, "Obsolete task")
	task.AssignedToID = &assignee.ID

	err := f.svc.Delete(context.Background(), principal, task.ID)
	require.NoError(t, err)

	_, getErr := f.tasks.GetByID(context.Background(), task.ID)
	assert.Error(t, getErr)
	// Deletion never notifies anyone, even the assignee.
	assert.Empty(t, f.notifications.Notifications)
}

func TestTaskService_Delete_PermissionDenied(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	creator, _ := newEmployee(t, "alice")
	_, stranger := newEmployee(t, "mallory")
	task := seedTask(t, f, creator, "Protected task")

	err := f.svc.Delete(context.Background(), stranger, task.ID)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	_, getErr := f.tasks.GetByID(context.Background(), task.ID)
	assert.NoError(t, getErr)
}

func TestTaskService_Assign_ReplacesAssigneeAndNotifies(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	creator, _ := newEmployee(t, "alice")
	_, manager := newManager(t, "meredith")
	previous, _ := newEmployee(t, "bob")
	next, _ := newEmployee(t, "carol")
	f.users.AddUser(next)

	task := seedTask(t, f, creator, "Handover task")
	task.AssignedToID = &previous.ID

	updated, err := f.svc.Assign(context.Background(), manager, task.ID, next.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedToID)
	assert.Equal(t, next.ID, *updated.AssignedToID)

	// Only the new assignee is notified.
	assert.Empty(t, f.notifications.ForRecipient(previous.ID))
	notifications := f.notifications.ForRecipient(next.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotificationTaskAssigned, notifications[0].Type)
	assert.Equal(t, "You have been assigned to task: Handover task", notifications[0].Message)
}

func TestTaskService_Assign_UnknownUser(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	creator, _ := newEmployee(t, "alice")
	_, manager := newManager(t, "meredith")
	task := seedTask(t, f, creator, "Unassignable task")

	_, err := f.svc.Assign(context.Background(), manager, task.ID, uuid.New())
	assert.ErrorIs(t, err, service.ErrUserNotFound)
	assert.Empty(t, f.notifications.Notifications)
}

func TestTaskService_UpdateStatus_DoneNotifiesCreator(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	creator, _ := newEmployee(t, "alice")
	assignee, assigneePrincipal := newEmployee(t, "bob")
	task := seedTask(t, f, creator, "Finish the migration")
	task.AssignedToID = &assignee.ID
	task.Status = domain.TaskStatusInProgress

	updated, err := f.svc.UpdateStatus(context.Background(), assigneePrincipal, task.ID, domain.TaskStatusDone)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusDone, updated.Status)

	// Completion notifies the creator, not the assignee.
	assert.Empty(t, f.notifications.ForRecipient(assignee.ID))
	notifications := f.notifications.ForRecipient(creator.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotificationTaskCompleted, notifications[0].Type)
	assert.Equal(t, "Task completed: Finish the migration", notifications[0].Message)
}

func TestTaskService_UpdateStatus_CancelledNotifiesAssignee(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	creator, principal := newEmployee(t, "alice")
	assignee, _ := newEmployee(t, "bob")
	task := seedTask(t, f, creator, "Abandoned experiment")
	task.AssignedToID = &assignee.ID

	_, err := f.svc.UpdateStatus(context.Background(), principal, task.ID, domain.TaskStatusCancelled)
	require.NoError(t, err)

	assert.Empty(t, f.notifications.ForRecipient(creator.ID))
	notifications := f.notifications.ForRecipient(assignee.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotificationTaskCancelled, notifications[0].Type)
	assert.Equal(t, "Task cancelled: Abandoned experiment", notifications[0].Message)
}

func TestTaskService_UpdateStatus_CancelledUnassignedEmitsNothing(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	creator, principal := newEmployee(t, "alice")
	task := seedTask(t, f, creator, "Unowned task")

	_, err := f.svc.UpdateStatus(context.Background(), principal, task.ID, domain.TaskStatusCancelled)
	require.NoError(t, err)
	assert.Empty(t, f.notifications.Notifications)
}

func TestTaskService_UpdateStatus_OtherTransitionNotifiesAssignee(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	creator, principal := newEmployee(t, "alice")
	assignee, _ := newEmployee(t, "bob")
	task := seedTask(t, f, creator, "Database upgrade")
	task.AssignedToID = &assignee.ID

	_, err := f.svc.UpdateStatus(context.Background(), principal, task.ID, domain.TaskStatusInProgress)
	require.NoError(t, err)

	notifications := f.notifications.ForRecipient(assignee.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotificationTaskUpdated, notifications[0].Type)
	assert.Equal(t,
		"Task status changed from TODO to IN_PROGRESS: Database upgrade",
		notifications[0].Message)
}

func TestTaskService_UpdateStatus_PermissionDenied(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	creator, _ := newEmployee(t, "alice")
	_, stranger := newEmployee(t, "mallory")
	task := seedTask(t, f, creator, "Locked task")

	_, err := f.svc.UpdateStatus(context.Background(), stranger, task.ID, domain.TaskStatusDone)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	stored, getErr := f.tasks.GetByID(context.Background(), task.ID)
	require.NoError(t, getErr)
	assert.Equal(t, domain.TaskStatusTodo, stored.Status)
	assert.Empty(t, f.notifications.Notifications)
}

func TestTaskService_UpdateStatus_InvalidStatus(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	creator, principal := newEmployee(t, "alice")
	task := seedTask(t, f, creator, "Some task")

	_, err := f.svc.UpdateStatus(context.Background(), principal, task.ID, domain.TaskStatus("ARCHIVED"))
	assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
}

func TestTaskService_List_FilterPrecedence(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	alice, _ := newEmployee(t, "alice")
	bob, _ := newEmployee(t, "bob")
	f.users.AddUser(alice)
	f.users.AddUser(bob)

	// alice creates three tasks; two assigned to bob, one of those done.
	assignedTodo := seedTask(t, f, alice, "Assigned and open")
	assignedTodo.AssignedToID = &bob.ID
	assignedDone := seedTask(t, f, alice, "Assigned and done")
	assignedDone.AssignedToID = &bob.ID
	assignedDone.Status = domain.TaskStatusDone
	unassigned := seedTask(t, f, alice, "Unassigned")

	ctx := context.Background()
	done := domain.TaskStatusDone

	// Combined assignee+status wins over either filter alone.
	tasks, err := f.svc.List(ctx, service.TaskFilter{AssignedToID: &bob.ID, Status: &done})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, assignedDone.ID, tasks[0].ID)

	// Assignee alone.
	tasks, err = f.svc.List(ctx, service.TaskFilter{AssignedToID: &bob.ID})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	// Creator alone.
	tasks, err = f.svc.List(ctx, service.TaskFilter{CreatedByID: &alice.ID})
	require.NoError(t, err)
	assert.Len(t, tasks, 3)

	// Status alone.
	tasks, err = f.svc.List(ctx, service.TaskFilter{Status: &done})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, assignedDone.ID, tasks[0].ID)

	// Empty filter lists everything.
	tasks, err = f.svc.List(ctx, service.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 3)
	_ = unassigned
}

func TestTaskService_List_UnknownUserFilter(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	alice, _ := newEmployee(t, "alice")
	f.users.AddUser(alice)
	seedTask(t, f, alice, "Existing task")

	ctx := context.Background()
	unknown := uuid.New()
	done := domain.TaskStatusDone

	// Filtering on a user nobody knows is an error, not an empty list.
	_, err := f.svc.List(ctx, service.TaskFilter{AssignedToID: &unknown})
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	_, err = f.svc.List(ctx, service.TaskFilter{AssignedToID: &unknown, Status: &done})
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	_, err = f.svc.List(ctx, service.TaskFilter{CreatedByID: &unknown})
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	// A known user still lists normally.
	tasks, err := f.svc.List(ctx, service.TaskFilter{CreatedByID: &alice.ID})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestTaskService_Search(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	alice, _ := newEmployee(t, "alice")

	deploy := seedTask(t, f, alice, "Deploy staging environment")
	review := seedTask(t, f, alice, "Code review")
	review.Description = "review the deploy scripts"
	seedTask(t, f, alice, "Unrelated chore")

	ctx := context.Background()

	// Matches title and description, case-insensitively.
	tasks, err := f.svc.Search(ctx, "DEPLOY")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	ids := []uuid.UUID{tasks[0].ID, tasks[1].ID}
	assert.Contains(t, ids, deploy.ID)
	assert.Contains(t, ids, review.ID)

	// A blank query is the full listing.
	tasks, err = f.svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, tasks, 3)

	// No matches is an empty result, not an error.
	tasks, err = f.svc.Search(ctx, "nonexistent")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskService_Create_TransactionFailureRollsBack(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	_, principal := newEmployee(t, "alice")
	assignee, _ := newEmployee(t, "bob")
	f.users.AddUser(assignee)

	// The notification write fails, so the whole operation must fail.
	f.notifications.CreateError = fmt.Errorf("connection reset")

	_, err := f.svc.Create(context.Background(), principal, service.CreateTaskInput{
		Title:        "Doomed task",
		AssignedToID: &assignee.ID,
	})
	require.Error(t, err)
	assert.Empty(t, f.notifications.Notifications)
}

func TestTaskService_Create_DueDate(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	_, principal := newEmployee(t, "alice")

	due := time.Now().UTC().Add(48 * time.Hour)
	task, err := f.svc.Create(context.Background(), principal, service.CreateTaskInput{
		Title:   "Dated task",
		DueDate: &due,
	})
	require.NoError(t, err)
	require.NotNil(t, task.DueDate)
	assert.True(t, task.DueDate.Equal(due))
}
