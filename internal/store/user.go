package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rcooper/taskflow-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and their role set to the store.
	// The caller must have hashed the password already.
	// Returns ErrUsernameExists or ErrEmailExists on unique violations.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID, roles included.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by their username, roles included.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List retrieves all users ordered by username.
	List(ctx context.Context) ([]*domain.User, error)

	// ListByRole retrieves all users holding the given role, ordered by username.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
