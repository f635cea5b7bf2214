package api

import (
	"net/http"

	"github.com/rcooper/taskflow-api/internal/api/shared"
	"github.com/rcooper/taskflow-api/internal/service"
)

// NotificationHandler handles notification feed API requests.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler with the given
// dependencies.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles GET /notifications.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}

	notifications, err := h.notificationService.ListForUser(r.Context(), principal)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Notifications retrieved successfully", notifications)
}

// ListUnread handles GET /notifications/unread.
func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}

	notifications, err := h.notificationService.ListUnread(r.Context(), principal)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Unread notifications retrieved successfully", notifications)
}

// CountUnread handles GET /notifications/unread/count.
func (h *NotificationHandler) CountUnread(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}

	count, err := h.notificationService.CountUnread(r.Context(), principal)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Unread count retrieved successfully",
		UnreadCountResponse{UnreadCount: count})
}

// MarkRead handles PATCH /notifications/{id}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	notification, err := h.notificationService.MarkRead(r.Context(), principal, id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Notification marked as read", notification)
}

// MarkAllRead handles PATCH /notifications/read-all.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllRead(r.Context(), principal); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "All notifications marked as read", nil)
}
