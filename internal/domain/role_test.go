package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcooper/taskflow-api/internal/domain"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input   string
		want    domain.Role
		wantErr bool
	}{
		{"ADMIN", domain.RoleAdmin, false},
		{"admin", domain.RoleAdmin, false},
		{"Manager", domain.RoleManager, false},
		{"employee", domain.RoleEmployee, false},
		{"root", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := domain.ParseRole(tc.input)
		if tc.wantErr {
			assert.ErrorIs(t, err, domain.ErrInvalidRole, "input %q", tc.input)
			continue
		}
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got)
	}
}

func TestPrincipal_Roles(t *testing.T) {
	t.Parallel()

	principal := domain.Principal{
		ID:       uuid.New(),
		Username: "meredith",
		Roles:    []domain.Role{domain.RoleManager},
	}

	assert.True(t, principal.HasRole(domain.RoleManager))
	assert.False(t, principal.HasRole(domain.RoleAdmin))
	assert.True(t, principal.HasAnyRole(domain.RoleAdmin, domain.RoleManager))
	assert.False(t, principal.HasAnyRole(domain.RoleAdmin))
	assert.True(t, principal.IsAdminOrManager())

	employee := domain.Principal{Roles: []domain.Role{domain.RoleEmployee}}
	assert.False(t, employee.IsAdminOrManager())
}
