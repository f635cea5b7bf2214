package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rcooper/taskflow-api/internal/domain"
)

// NotificationStore defines the interface for notification data persistence.
// Notifications are append-mostly: after creation only the read flag mutates.
type NotificationStore interface {
	// Create saves a new notification to the store.
	// Returns ErrInvalidEntity if the recipient does not exist.
	// Returns validation errors from the domain Notification if data is invalid.
	Create(ctx context.Context, notification *domain.Notification) error

	// GetByID retrieves a notification by its unique ID.
	// Returns ErrNotificationNotFound if the notification does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)

	// ListByRecipient retrieves all notifications for the given user,
	// newest first.
	ListByRecipient(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)

	// ListByRecipientAndReadState retrieves the user's notifications filtered
	// by read state, newest first.
	ListByRecipientAndReadState(ctx context.Context, userID uuid.UUID, isRead bool) ([]*domain.Notification, error)

	// CountByRecipientAndReadState counts the user's notifications in the
	// given read state.
	CountByRecipientAndReadState(ctx context.Context, userID uuid.UUID, isRead bool) (int64, error)

	// MarkRead sets the read flag on a single notification.
	// Returns ErrNotificationNotFound if the notification does not exist.
	MarkRead(ctx context.Context, id uuid.UUID) error

	// MarkAllRead sets the read flag on every unread notification belonging
	// to the given user. Idempotent; a no-op when nothing is unread.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	// WithTx returns a new NotificationStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) NotificationStore
}
