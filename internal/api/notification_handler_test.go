package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcooper/taskflow-api/internal/api"
	"github.com/rcooper/taskflow-api/internal/domain"
	"github.com/rcooper/taskflow-api/internal/mocks"
	"github.com/rcooper/taskflow-api/internal/service"
)

type notificationHandlerFixture struct {
	store   *mocks.MockNotificationStore
	handler *api.NotificationHandler
}

func newNotificationHandlerFixture(t *testing.T) *notificationHandlerFixture {
	t.Helper()

	store := mocks.NewMockNotificationStore()
	svc, err := service.NewNotificationService(store, nil)
	require.NoError(t, err)

	return &notificationHandlerFixture{
		store:   store,
		handler: api.NewNotificationHandler(svc),
	}
}

func (f *notificationHandlerFixture) router(principal *domain.Principal) http.Handler {
	r := chi.NewRouter()
	r.Use(injectPrincipal(principal))
	r.Get("/notifications", f.handler.List)
	r.Get("/notifications/unread", f.handler.ListUnread)
	r.Get("/notifications/unread/count", f.handler.CountUnread)
	r.Patch("/notifications/read-all", f.handler.MarkAllRead)
	r.Patch("/notifications/{id}/read", f.handler.MarkRead)
	return r
}

func (f *notificationHandlerFixture) seed(t *testing.T, userID uuid.UUID, message string) *domain.Notification {
	t.Helper()

	notification, err := domain.NewNotification(userID, message, domain.NotificationTaskAssigned)
	require.NoError(t, err)
	f.store.Notifications = append(f.store.Notifications, notification)
	return notification
}

func TestNotificationHandler_List(t *testing.T) {
	t.Parallel()

	f := newNotificationHandlerFixture(t)
	principal := testPrincipal()
	other := testPrincipal()

	f.seed(t, principal.ID, "yours")
	f.seed(t, other.ID, "not yours")

	rec, env := doJSON(t, f.router(principal), http.MethodGet, "/notifications", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Notifications retrieved successfully", env.Message)

	var notifications []*domain.Notification
	require.NoError(t, json.Unmarshal(env.Data, &notifications))
	require.Len(t, notifications, 1)
	assert.Equal(t, "yours", notifications[0].Message)
}

func TestNotificationHandler_CountUnread(t *testing.T) {
	t.Parallel()

	f := newNotificationHandlerFixture(t)
	principal := testPrincipal()

	f.seed(t, principal.ID, "one")
	read := f.seed(t, principal.ID, "two")
	read.IsRead = true

	rec, env := doJSON(t, f.router(principal), http.MethodGet, "/notifications/unread/count", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp api.UnreadCountResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, int64(1), resp.UnreadCount)
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	t.Parallel()

	f := newNotificationHandlerFixture(t)
	principal := testPrincipal()
	notification := f.seed(t, principal.ID, "mark me")

	rec, env := doJSON(t, f.router(principal), http.MethodPatch,
		"/notifications/"+notification.ID.String()+"/read", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Notification marked as read", env.Message)

	var marked domain.Notification
	require.NoError(t, json.Unmarshal(env.Data, &marked))
	assert.True(t, marked.IsRead)
}

func TestNotificationHandler_MarkRead_OtherUsers(t *testing.T) {
	t.Parallel()

	f := newNotificationHandlerFixture(t)
	principal := testPrincipal()
	other := testPrincipal()
	notification := f.seed(t, other.ID, "private")

	// Someone else's notification reads as missing.
	rec, env := doJSON(t, f.router(principal), http.MethodPatch,
		"/notifications/"+notification.ID.String()+"/read", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Notification not found", env.Message)
}

func TestNotificationHandler_MarkAllRead(t *testing.T) {
	t.Parallel()

	f := newNotificationHandlerFixture(t)
	principal := testPrincipal()

	f.seed(t, principal.ID, "one")
	f.seed(t, principal.ID, "two")

	rec, env := doJSON(t, f.router(principal), http.MethodPatch, "/notifications/read-all", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "All notifications marked as read", env.Message)

	_, env = doJSON(t, f.router(principal), http.MethodGet, "/notifications/unread/count", nil)
	var resp api.UnreadCountResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, int64(0), resp.UnreadCount)
}
