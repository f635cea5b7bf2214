package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcooper/taskflow-api/internal/domain"
)

func TestNewNotification(t *testing.T) {
	t.Parallel()

	recipient := uuid.New()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		notification, err := domain.NewNotification(recipient, "Task updated: something", domain.NotificationTaskUpdated)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, notification.ID)
		assert.Equal(t, recipient, notification.UserID)
		assert.False(t, notification.IsRead)
		assert.False(t, notification.CreatedAt.IsZero())
	})

	t.Run("empty type defaults to system", func(t *testing.T) {
		t.Parallel()

		notification, err := domain.NewNotification(recipient, "maintenance window tonight", "")
		require.NoError(t, err)
		assert.Equal(t, domain.NotificationSystem, notification.Type)
	})

	t.Run("empty recipient", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewNotification(uuid.Nil, "orphan message", domain.NotificationSystem)
		assert.ErrorIs(t, err, domain.ErrNotificationRecipientEmpty)
	})

	t.Run("empty message", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewNotification(recipient, "", domain.NotificationSystem)
		assert.ErrorIs(t, err, domain.ErrNotificationMessageEmpty)
	})

	t.Run("message too long", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewNotification(recipient, strings.Repeat("x", 501), domain.NotificationSystem)
		assert.ErrorIs(t, err, domain.ErrNotificationMessageTooLong)
	})

	t.Run("invalid type", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewNotification(recipient, "message", domain.NotificationType("TASK_EXPLODED"))
		assert.ErrorIs(t, err, domain.ErrInvalidNotificationType)
	})
}

func TestParseNotificationType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input   string
		want    domain.NotificationType
		wantErr bool
	}{
		{"TASK_ASSIGNED", domain.NotificationTaskAssigned, false},
		{"task_updated", domain.NotificationTaskUpdated, false},
		{"Task_Completed", domain.NotificationTaskCompleted, false},
		{"TASK_CANCELLED", domain.NotificationTaskCancelled, false},
		{"system", domain.NotificationSystem, false},
		{"TASK_REMINDED", "", true},
	}

	for _, tc := range cases {
		got, err := domain.ParseNotificationType(tc.input)
		if tc.wantErr {
			assert.ErrorIs(t, err, domain.ErrInvalidNotificationType, "input %q", tc.input)
			continue
		}
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got)
	}
}
