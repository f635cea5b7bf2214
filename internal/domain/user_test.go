package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcooper/taskflow-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		user, err := domain.NewUser("alice", "alice@example.com", "password123")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "alice", user.Username)
		// New accounts always start as EMPLOYEE.
		assert.Equal(t, []domain.Role{domain.RoleEmployee}, user.Roles)
	})

	t.Run("username too short", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewUser("ab", "ab@example.com", "password123")
		assert.ErrorIs(t, err, domain.ErrUsernameTooShort)
	})

	t.Run("username too long", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewUser(strings.Repeat("x", 51), "x@example.com", "password123")
		assert.ErrorIs(t, err, domain.ErrUsernameTooLong)
	})

	t.Run("invalid email", func(t *testing.T) {
		t.Parallel()

		for _, email := range []string{"not-an-email", "@example.com", "alice@", "alice@nodot"} {
			_, err := domain.NewUser("alice", email, "password123")
			assert.Error(t, err, "email %q", email)
		}
	})

	t.Run("password too short", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewUser("alice", "alice@example.com", "short")
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	})

	t.Run("password too long", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewUser("alice", "alice@example.com", strings.Repeat("x", 73))
		assert.ErrorIs(t, err, domain.ErrPasswordTooLong)
	})
}

func TestUser_Validate_StoredUser(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	// A user loaded from the store carries only a hash.
	user.Password = ""
	user.HashedPassword = "$2a$10$abcdefghijklmnopqrstuv"
	assert.NoError(t, user.Validate())

	// Neither plaintext nor hash is invalid.
	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), domain.ErrEmptyPassword)
}

func TestUser_Validate_Roles(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	user.Roles = nil
	assert.ErrorIs(t, user.Validate(), domain.ErrNoRoles)

	user.Roles = []domain.Role{"SUPERUSER"}
	assert.ErrorIs(t, user.Validate(), domain.ErrInvalidRole)
}

func TestUser_HasRole(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("alice", "alice@example.com", "password123")
	require.NoError(t, err)
	user.Roles = []domain.Role{domain.RoleEmployee, domain.RoleManager}

	assert.True(t, user.HasRole(domain.RoleManager))
	assert.True(t, user.HasRole(domain.RoleEmployee))
	assert.False(t, user.HasRole(domain.RoleAdmin))
}

func TestUser_Principal(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("alice", "alice@example.com", "password123")
	require.NoError(t, err)
	user.Roles = []domain.Role{domain.RoleAdmin}

	principal := user.Principal()
	assert.Equal(t, user.ID, principal.ID)
	assert.Equal(t, user.Username, principal.Username)
	assert.Equal(t, user.Roles, principal.Roles)

	// The principal holds its own copy of the roles.
	principal.Roles[0] = domain.RoleEmployee
	assert.Equal(t, domain.RoleAdmin, user.Roles[0])
}
