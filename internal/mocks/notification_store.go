package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rcooper/taskflow-api/internal/domain"
	"github.com/rcooper/taskflow-api/internal/store"
)

// MockNotificationStore implements store.NotificationStore for testing.
// Notifications are kept in insertion order; listings return newest first.
type MockNotificationStore struct {
	// Function fields for customizable behavior
	CreateFn   func(ctx context.Context, notification *domain.Notification) error
	MarkReadFn func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	Notifications []*domain.Notification

	// Errors returned by the default implementations when set
	CreateError error
	GetError    error
}

// NewMockNotificationStore creates a new mock store with initialized defaults
func NewMockNotificationStore() *MockNotificationStore {
	return &MockNotificationStore{}
}

var _ store.NotificationStore = (*MockNotificationStore)(nil)

// Create implements the NotificationStore interface
func (m *MockNotificationStore) Create(ctx context.Context, notification *domain.Notification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, notification)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	m.Notifications = append(m.Notifications, notification)
	return nil
}

// GetByID implements the NotificationStore interface
func (m *MockNotificationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}

	for _, notification := range m.Notifications {
		if notification.ID == id {
			return notification, nil
		}
	}
	return nil, store.ErrNotificationNotFound
}

// ListByRecipient implements the NotificationStore interface
func (m *MockNotificationStore) ListByRecipient(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Notification, error) {
	return m.filter(func(n *domain.Notification) bool { return n.UserID == userID }), nil
}

// ListByRecipientAndReadState implements the NotificationStore interface
func (m *MockNotificationStore) ListByRecipientAndReadState(
	ctx context.Context,
	userID uuid.UUID,
	isRead bool,
) ([]*domain.Notification, error) {
	return m.filter(func(n *domain.Notification) bool {
		return n.UserID == userID && n.IsRead == isRead
	}), nil
}

// CountByRecipientAndReadState implements the NotificationStore interface
func (m *MockNotificationStore) CountByRecipientAndReadState(
	ctx context.Context,
	userID uuid.UUID,
	isRead bool,
) (int64, error) {
	notifications, _ := m.ListByRecipientAndReadState(ctx, userID, isRead)
	return int64(len(notifications)), nil
}

// MarkRead implements the NotificationStore interface
func (m *MockNotificationStore) MarkRead(ctx context.Context, id uuid.UUID) error {
	if m.MarkReadFn != nil {
		return m.MarkReadFn(ctx, id)
	}

	for _, notification := range m.Notifications {
		if notification.ID == id {
			notification.IsRead = true
			return nil
		}
	}
	return store.ErrNotificationNotFound
}

// MarkAllRead implements the NotificationStore interface
func (m *MockNotificationStore) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	for _, notification := range m.Notifications {
		if notification.UserID == userID {
			notification.IsRead = true
		}
	}
	return nil
}

// WithTx implements the NotificationStore interface. The mock is not
// transactional, so it returns itself.
func (m *MockNotificationStore) WithTx(tx *sql.Tx) store.NotificationStore {
	return m
}

// ForRecipient returns all stored notifications for the given user in
// insertion order. Test helper, not part of the store interface.
func (m *MockNotificationStore) ForRecipient(userID uuid.UUID) []*domain.Notification {
	var notifications []*domain.Notification
	for _, notification := range m.Notifications {
		if notification.UserID == userID {
			notifications = append(notifications, notification)
		}
	}
	return notifications
}

// filter returns matching notifications newest first.
func (m *MockNotificationStore) filter(keep func(*domain.Notification) bool) []*domain.Notification {
	var notifications []*domain.Notification
	for i := len(m.Notifications) - 1; i >= 0; i-- {
		if keep(m.Notifications[i]) {
			notifications = append(notifications, m.Notifications[i])
		}
	}
	return notifications
}
