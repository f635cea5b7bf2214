package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rcooper/taskflow-api/internal/api/shared"
	"github.com/rcooper/taskflow-api/internal/domain"
	"github.com/rcooper/taskflow-api/internal/service"
)

// TaskHandler handles task lifecycle API requests.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	input := service.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		AssignedToID: req.AssignedToID,
		DueDate:      req.DueDate,
	}
	if req.Priority != nil {
		priority, err := domain.ParseTaskPriority(*req.Priority)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid priority")
			return
		}
		input.Priority = &priority
	}

	task, err := h.taskService.Create(r.Context(), principal, input)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, "Task created successfully", task)
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Task retrieved successfully", task)
}

// List handles GET /tasks with optional status, assigned_to and created_by
// query filters.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter service.TaskFilter

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := domain.ParseTaskStatus(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("assigned_to"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid assigned_to filter")
			return
		}
		filter.AssignedToID = &id
	}
	if raw := r.URL.Query().Get("created_by"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid created_by filter")
			return
		}
		filter.CreatedByID = &id
	}

	tasks, err := h.taskService.List(r.Context(), filter)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Tasks retrieved successfully", tasks)
}

// Search handles GET /tasks/search?q=. A blank query returns all tasks.
func (h *TaskHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	tasks, err := h.taskService.Search(r.Context(), query)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Tasks retrieved successfully", tasks)
}

// Update handles PUT /tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	input := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.Priority != nil {
		priority, err := domain.ParseTaskPriority(*req.Priority)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid priority")
			return
		}
		input.Priority = &priority
	}

	task, err := h.taskService.Update(r.Context(), principal, id, input)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Task updated successfully", task)
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), principal, id); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Task deleted successfully", nil)
}

// Assign handles PUT /tasks/{id}/assign. Restricted to admins and managers
// by the route's role middleware.
func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req AssignTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.Assign(r.Context(), principal, id, req.UserID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Task assigned successfully", task)
}

// UpdateStatus handles PATCH /tasks/{id}/status.
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTaskStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	status, err := domain.ParseTaskStatus(req.Status)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid status")
		return
	}

	task, err := h.taskService.UpdateStatus(r.Context(), principal, id, status)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Task status updated successfully", task)
}
