package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rcooper/taskflow-api/internal/api/shared"
	"github.com/rcooper/taskflow-api/internal/domain"
	"github.com/rcooper/taskflow-api/internal/service"
)

// UserHandler handles user directory API requests.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me handles GET /users/me, returning the authenticated user's own record.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(r.Context(), principal.ID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "User retrieved successfully", user)
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "User retrieved successfully", user)
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Users retrieved successfully", users)
}

// GetByUsername handles GET /users/username/{username}.
func (h *UserHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.userService.GetByUsername(r.Context(), username)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "User retrieved successfully", user)
}

// ListByRole handles GET /users/role/{role}.
func (h *UserHandler) ListByRole(w http.ResponseWriter, r *http.Request) {
	role, err := domain.ParseRole(chi.URLParam(r, "role"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid role")
		return
	}

	users, err := h.userService.ListByRole(r.Context(), role)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Users retrieved successfully", users)
}
