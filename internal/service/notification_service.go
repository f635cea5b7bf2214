package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rcooper/taskflow-api/internal/domain"
	"github.com/rcooper/taskflow-api/internal/store"
)

// NotificationService provides read and acknowledgement operations over a
// user's notification feed.
type NotificationService interface {
	// ListForUser returns all of the principal's notifications, newest first.
	ListForUser(ctx context.Context, principal *domain.Principal) ([]*domain.Notification, error)

	// ListUnread returns the principal's unread notifications, newest first.
	ListUnread(ctx context.Context, principal *domain.Principal) ([]*domain.Notification, error)

	// CountUnread returns the number of unread notifications for the principal.
	CountUnread(ctx context.Context, principal *domain.Principal) (int64, error)

	// MarkRead marks one of the principal's notifications as read. A
	// notification belonging to another user is reported as not found, never
	// as a permission failure.
	MarkRead(ctx context.Context, principal *domain.Principal, id uuid.UUID) (*domain.Notification, error)

	// MarkAllRead marks every unread notification of the principal as read.
	MarkAllRead(ctx context.Context, principal *domain.Principal) error
}

// notificationServiceImpl implements the NotificationService interface
type notificationServiceImpl struct {
	notificationStore store.NotificationStore
	logger            *slog.Logger
}

// Ensure notificationServiceImpl implements NotificationService interface
var _ NotificationService = (*notificationServiceImpl)(nil)

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	notificationStore store.NotificationStore,
	logger *slog.Logger,
) (NotificationService, error) {
	if notificationStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "notificationStore cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &notificationServiceImpl{
		notificationStore: notificationStore,
		logger:            logger.With("component", "notification_service"),
	}, nil
}

// ListForUser returns all notifications addressed to the principal.
func (s *notificationServiceImpl) ListForUser(
	ctx context.Context,
	principal *domain.Principal,
) ([]*domain.Notification, error) {
	notifications, err := s.notificationStore.ListByRecipient(ctx, principal.ID)
	if err != nil {
		return nil, NewServiceError("list_notifications", "failed to list notifications", err)
	}
	return notifications, nil
}

// ListUnread returns the principal's unread notifications.
func (s *notificationServiceImpl) ListUnread(
	ctx context.Context,
	principal *domain.Principal,
) ([]*domain.Notification, error) {
	notifications, err := s.notificationStore.ListByRecipientAndReadState(ctx, principal.ID, false)
	if err != nil {
		return nil, NewServiceError("list_unread_notifications", "failed to list notifications", err)
	}
	return notifications, nil
}

// CountUnread returns the principal's unread notification count.
func (s *notificationServiceImpl) CountUnread(
	ctx context.Context,
	principal *domain.Principal,
) (int64, error) {
	count, err := s.notificationStore.CountByRecipientAndReadState(ctx, principal.ID, false)
	if err != nil {
		return 0, NewServiceError("count_unread_notifications", "failed to count notifications", err)
	}
	return count, nil
}

// MarkRead marks a single notification as read after an ownership check.
// Ownership failures are indistinguishable from missing notifications so the
// existence of another user's notification is never revealed.
func (s *notificationServiceImpl) MarkRead(
	ctx context.Context,
	principal *domain.Principal,
	id uuid.UUID,
) (*domain.Notification, error) {
	notification, err := s.notificationStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotificationNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, NewServiceError("mark_notification_read", "failed to retrieve notification", err)
	}

	if notification.UserID != principal.ID {
		s.logger.Warn("notification ownership mismatch on mark read",
			"notification_id", id,
			"user_id", principal.ID)
		return nil, ErrNotificationNotFound
	}

	if err := s.notificationStore.MarkRead(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotificationNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, NewServiceError("mark_notification_read", "failed to mark notification read", err)
	}

	notification.IsRead = true
	return notification, nil
}

// MarkAllRead marks all of the principal's unread notifications as read.
func (s *notificationServiceImpl) MarkAllRead(
	ctx context.Context,
	principal *domain.Principal,
) error {
	if err := s.notificationStore.MarkAllRead(ctx, principal.ID); err != nil {
		return NewServiceError("mark_all_notifications_read", "failed to mark notifications read", err)
	}

	s.logger.Info("all notifications marked read",
		"user_id", principal.ID)
	return nil
}
