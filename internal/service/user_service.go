package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rcooper/taskflow-api/internal/domain"
	"github.com/rcooper/taskflow-api/internal/service/auth"
	"github.com/rcooper/taskflow-api/internal/store"
)

// RegisterUserInput carries the fields required to register a new account.
type RegisterUserInput struct {
	Username string
	Email    string
	Password string
}

// UserService provides account registration and directory lookups.
type UserService interface {
	// Register creates a new account with the EMPLOYEE role and a hashed
	// password.
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)

	// GetByID retrieves a user by their unique ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List returns all users ordered by username.
	List(ctx context.Context) ([]*domain.User, error)

	// ListByRole returns all users holding the given role.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	logger    *slog.Logger
}

// Ensure userServiceImpl implements UserService interface
var _ UserService = (*userServiceImpl)(nil)

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "userStore cannot be nil"}
	}
	if hasher == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "hasher cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		logger:    logger.With("component", "user_service"),
	}, nil
}

// Register validates the input, hashes the password, and persists the user.
// New accounts start with the EMPLOYEE role.
func (s *userServiceImpl) Register(
	ctx context.Context,
	input RegisterUserInput,
) (*domain.User, error) {
	user, err := domain.NewUser(input.Username, input.Email, input.Password)
	if err != nil {
		s.logger.Warn("user registration validation failed",
			"error", err,
			"username", input.Username)
		return nil, NewServiceError("register_user", "invalid user data", err)
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err)
		return nil, NewServiceError("register_user", "failed to hash password", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameExists):
			return nil, ErrUsernameTaken
		case errors.Is(err, store.ErrEmailExists):
			return nil, ErrEmailTaken
		}
		return nil, NewServiceError("register_user", "failed to save user", err)
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"username", user.Username)
	return user, nil
}

// GetByID retrieves a user by their unique ID.
func (s *userServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, NewServiceError("get_user", "failed to retrieve user", err)
	}
	return user, nil
}

// GetByUsername retrieves a user by username.
func (s *userServiceImpl) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, NewServiceError("get_user", "failed to retrieve user", err)
	}
	return user, nil
}

// List returns all users.
func (s *userServiceImpl) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_users", "failed to list users", err)
	}
	return users, nil
}

// ListByRole returns all users holding the given role.
func (s *userServiceImpl) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	if err := role.Validate(); err != nil {
		return nil, NewServiceError("list_users_by_role", "invalid role", err)
	}

	users, err := s.userStore.ListByRole(ctx, role)
	if err != nil {
		return nil, NewServiceError("list_users_by_role", "failed to list users", err)
	}
	return users, nil
}
