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

// PostgresNotificationStore implements the store.NotificationStore interface
// using a PostgreSQL database as the storage backend.
type PostgresNotificationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNotificationStore creates a new PostgreSQL implementation of the
// NotificationStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresNotificationStore(db store.DBTX, logger *slog.Logger) *PostgresNotificationStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresNotificationStore{
		db:     db,
		logger: logger.With(slog.String("component", "notification_store")),
	}
}

// Ensure PostgresNotificationStore implements store.NotificationStore interface
var _ store.NotificationStore = (*PostgresNotificationStore)(nil)

// WithTx implements store.NotificationStore.WithTx
func (s *PostgresNotificationStore) WithTx(tx *sql.Tx) store.NotificationStore {
	return &PostgresNotificationStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.NotificationStore.Create
// Returns store.ErrInvalidEntity if the recipient doesn't exist
// (foreign key violation).
func (s *PostgresNotificationStore) Create(ctx context.Context, notification *domain.Notification) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := notification.Validate(); err != nil {
		log.Warn("notification validation failed during create",
			slog.String("error", err.Error()),
			slog.String("notification_id", notification.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO notifications (id, user_id, message, type, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		notification.ID,
		notification.UserID,
		notification.Message,
		string(notification.Type),
		notification.IsRead,
		notification.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during notification creation",
				slog.String("error", err.Error()),
				slog.String("user_id", notification.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, notification.UserID)
		}

		log.Error("failed to create notification",
			slog.String("error", err.Error()),
			slog.String("notification_id", notification.ID.String()))
		return err
	}

	log.Debug("notification created successfully",
		slog.String("notification_id", notification.ID.String()),
		slog.String("user_id", notification.UserID.String()),
		slog.String("type", string(notification.Type)))
	return nil
}

const notificationColumns = `id, user_id, message, type, is_read, created_at`

// GetByID implements store.NotificationStore.GetByID
// Returns store.ErrNotificationNotFound if the notification does not exist.
func (s *PostgresNotificationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`

	notification, err := scanNotification(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotificationNotFound
		}
		log.Error("failed to retrieve notification",
			slog.String("error", err.Error()),
			slog.String("notification_id", id.String()))
		return nil, err
	}

	return notification, nil
}

// ListByRecipient implements store.NotificationStore.ListByRecipient
// Results are ordered newest first.
func (s *PostgresNotificationStore) ListByRecipient(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return s.listQuery(ctx, query, userID)
}

// ListByRecipientAndReadState implements store.NotificationStore.ListByRecipientAndReadState
// Results are ordered newest first.
func (s *PostgresNotificationStore) ListByRecipientAndReadState(
	ctx context.Context,
	userID uuid.UUID,
	isRead bool,
) ([]*domain.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1 AND is_read = $2
		ORDER BY created_at DESC
	`
	return s.listQuery(ctx, query, userID, isRead)
}

// CountByRecipientAndReadState implements store.NotificationStore.CountByRecipientAndReadState
func (s *PostgresNotificationStore) CountByRecipientAndReadState(
	ctx context.Context,
	userID uuid.UUID,
	isRead bool,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int64
	err := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = $2`,
		userID,
		isRead,
	).Scan(&count)
	if err != nil {
		log.Error("failed to count notifications",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, err
	}

	return count, nil
}

// MarkRead implements store.NotificationStore.MarkRead
// Returns store.ErrNotificationNotFound if the notification does not exist.
func (s *PostgresNotificationStore) MarkRead(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1`,
		id,
	)
	if err != nil {
		log.Error("failed to mark notification as read",
			slog.String("error", err.Error()),
			slog.String("notification_id", id.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead implements store.NotificationStore.MarkAllRead
// A single bulk update; idempotent by construction.
func (s *PostgresNotificationStore) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(
		ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`,
		userID,
	)
	if err != nil {
		log.Error("failed to mark all notifications as read",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	return nil
}

func (s *PostgresNotificationStore) listQuery(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list notifications",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var notifications []*domain.Notification
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			log.Error("failed to scan notification row",
				slog.String("error", err.Error()))
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return notifications, rows.Err()
}

func scanNotification(row rowScanner) (*domain.Notification, error) {
	var (
		notification domain.Notification
		notifType    string
	)

	err := row.Scan(
		&notification.ID,
		&notification.UserID,
		&notification.Message,
		&notifType,
		&notification.IsRead,
		&notification.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	notification.Type = domain.NotificationType(notifType)
	return &notification, nil
}
