// Package postgres contains the PostgreSQL implementations of the store
// interfaces, built on database/sql over the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rcooper/taskflow-api/internal/domain"
	"github.com/rcooper/taskflow-api/internal/platform/logger"
	"github.com/rcooper/taskflow-api/internal/store"
)

// PostgreSQL error codes
const (
	pgUniqueViolationCode     = "23505"
	pgForeignKeyViolationCode = "23503"
)

// isUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation, optionally restricted to a named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolationCode {
		return false
	}
	return constraint == "" || strings.Contains(pgErr.ConstraintName, constraint)
}

// isForeignKeyViolation checks if the given error is a PostgreSQL foreign
// key constraint violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode
}

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed
// by the caller. If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.UserStore.Create
// It saves a new user and their role rows, handling domain validation.
// Returns store.ErrUsernameExists or store.ErrEmailExists on unique violations.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO users (id, username, email, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.Email,
		user.HashedPassword,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "users_username") {
			log.Warn("duplicate username during user creation",
				slog.String("user_id", user.ID.String()))
			return store.ErrUsernameExists
		}
		if isUniqueViolation(err, "users_email") {
			log.Warn("duplicate email during user creation",
				slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	for _, role := range user.Roles {
		_, err := s.db.ExecContext(
			ctx,
			`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`,
			user.ID,
			string(role),
		)
		if err != nil {
			log.Error("failed to create user role",
				slog.String("error", err.Error()),
				slog.String("user_id", user.ID.String()),
				slog.String("role", string(role)))
			return err
		}
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return nil
}

// GetByID implements store.UserStore.GetByID
// It retrieves a user by their unique ID, roles included.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, username, email, hashed_password, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return s.getOne(ctx, query, id)
}

// GetByUsername implements store.UserStore.GetByUsername
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, email, hashed_password, created_at, updated_at
		FROM users
		WHERE username = $1
	`
	return s.getOne(ctx, query, username)
}

// List implements store.UserStore.List
func (s *PostgresUserStore) List(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, username, email, hashed_password, created_at, updated_at
		FROM users
		ORDER BY username
	`
	return s.list(ctx, query)
}

// ListByRole implements store.UserStore.ListByRole
func (s *PostgresUserStore) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.hashed_password, u.created_at, u.updated_at
		FROM users u
		JOIN user_roles r ON r.user_id = u.id
		WHERE r.role = $1
		ORDER BY u.username
	`
	return s.list(ctx, query, string(role))
}

func (s *PostgresUserStore) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to retrieve user",
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.loadRoles(ctx, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *PostgresUserStore) list(ctx context.Context, query string, args ...any) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list users",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.HashedPassword,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan user row",
				slog.String("error", err.Error()))
			return nil, err
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, user := range users {
		if err := s.loadRoles(ctx, user); err != nil {
			return nil, err
		}
	}

	return users, nil
}

// loadRoles populates the user's role set from the user_roles table.
func (s *PostgresUserStore) loadRoles(ctx context.Context, user *domain.User) error {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`,
		user.ID,
	)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	user.Roles = user.Roles[:0]
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return err
		}
		user.Roles = append(user.Roles, domain.Role(role))
	}
	return rows.Err()
}
