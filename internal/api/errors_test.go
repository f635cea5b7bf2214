package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcooper/taskflow-api/internal/api"
	"github.com/rcooper/taskflow-api/internal/domain"
	"github.com/rcooper/taskflow-api/internal/service"
	"github.com/rcooper/taskflow-api/internal/service/auth"
	"github.com/rcooper/taskflow-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized},
		{"invalid refresh token", auth.ErrInvalidRefreshToken, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"permission denied", service.ErrPermissionDenied, http.StatusForbidden},
		{"task not found", service.ErrTaskNotFound, http.StatusNotFound},
		{"user not found", service.ErrUserNotFound, http.StatusNotFound},
		{"notification not found", service.ErrNotificationNotFound, http.StatusNotFound},
		{"store not found", store.ErrNotFound, http.StatusNotFound},
		{"username taken", service.ErrUsernameTaken, http.StatusConflict},
		{"email taken", service.ErrEmailTaken, http.StatusConflict},
		{"store duplicate", store.ErrDuplicate, http.StatusConflict},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"domain validation", domain.ErrValidation, http.StatusBadRequest},
		{"unknown", errors.New("something broke"), http.StatusInternalServerError},
		{"wrapped sentinel", fmt.Errorf("context: %w", service.ErrTaskNotFound), http.StatusNotFound},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, api.MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want string
	}{
		{auth.ErrInvalidToken, "Invalid token"},
		{auth.ErrMissingToken, "Authentication required"},
		{auth.ErrInvalidCredentials, "Invalid username or password"},
		{service.ErrPermissionDenied, "You do not have permission to perform this action"},
		{service.ErrTaskNotFound, "Task not found"},
		{service.ErrUserNotFound, "User not found"},
		{service.ErrNotificationNotFound, "Notification not found"},
		{service.ErrUsernameTaken, "Username is already taken"},
		{service.ErrEmailTaken, "Email is already in use"},
		{errors.New("pq: connection refused on 10.0.0.5"), "An unexpected error occurred"},
		{nil, "An unexpected error occurred"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, api.GetSafeErrorMessage(tc.err))
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag")
	assert.Equal(t, "Invalid Email: required field", api.SanitizeValidationError(err))

	err = errors.New(
		"Key: 'RegisterRequest.Password' Error:Field validation for 'Password' failed on the 'min' tag")
	assert.Equal(t, "Invalid Password: too short", api.SanitizeValidationError(err))

	assert.Equal(t, "Validation error", api.SanitizeValidationError(errors.New("some internal detail")))
}
