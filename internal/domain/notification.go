package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Notification validation errors.
var (
	ErrNotificationIDEmpty        = errors.New("notification ID cannot be empty")
	ErrNotificationRecipientEmpty = errors.New("notification recipient cannot be empty")
	ErrNotificationMessageEmpty   = errors.New("notification message cannot be empty")
	ErrNotificationMessageTooLong = errors.New("notification message must be at most 500 characters long")
)

// NotificationType classifies the task lifecycle event a notification
// originates from.
type NotificationType string

// Notification types.
const (
	NotificationTaskAssigned  NotificationType = "TASK_ASSIGNED"
	NotificationTaskUpdated   NotificationType = "TASK_UPDATED"
	NotificationTaskCompleted NotificationType = "TASK_COMPLETED"
	NotificationTaskCancelled NotificationType = "TASK_CANCELLED"
	NotificationSystem        NotificationType = "SYSTEM"
)

// ParseNotificationType converts a string into a NotificationType,
// case-insensitively.
func ParseNotificationType(s string) (NotificationType, error) {
	switch NotificationType(strings.ToUpper(s)) {
	case NotificationTaskAssigned:
		return NotificationTaskAssigned, nil
	case NotificationTaskUpdated:
		return NotificationTaskUpdated, nil
	case NotificationTaskCompleted:
		return NotificationTaskCompleted, nil
	case NotificationTaskCancelled:
		return NotificationTaskCancelled, nil
	case NotificationSystem:
		return NotificationSystem, nil
	default:
		return "", ErrInvalidNotificationType
	}
}

// Validate checks that the type is one of the recognized values.
func (t NotificationType) Validate() error {
	switch t {
	case NotificationTaskAssigned, NotificationTaskUpdated, NotificationTaskCompleted,
		NotificationTaskCancelled, NotificationSystem:
		return nil
	default:
		return ErrInvalidNotificationType
	}
}

// Notification is an append-only record delivered to a single user.
// Message, type, recipient and creation time are immutable once created;
// only the read flag mutates.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewNotification creates an unread Notification for the given recipient.
// An empty type defaults to SYSTEM. Returns an error if validation fails.
func NewNotification(userID uuid.UUID, message string, notifType NotificationType) (*Notification, error) {
	if notifType == "" {
		notifType = NotificationSystem
	}

	notification := &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Message:   message,
		Type:      notifType,
		IsRead:    false,
		CreatedAt: time.Now().UTC(),
	}

	if err := notification.Validate(); err != nil {
		return nil, err
	}

	return notification, nil
}

// Validate checks if the Notification has valid data.
// Returns an error if any field fails validation.
func (n *Notification) Validate() error {
	if n.ID == uuid.Nil {
		return ErrNotificationIDEmpty
	}
	if n.UserID == uuid.Nil {
		return ErrNotificationRecipientEmpty
	}
	if n.Message == "" {
		return ErrNotificationMessageEmpty
	}
	if len(n.Message) > 500 {
		return ErrNotificationMessageTooLong
	}
	return n.Type.Validate()
}
