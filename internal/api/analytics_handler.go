package api

import (
	"net/http"

	"github.com/rcooper/taskflow-api/internal/api/shared"
	"github.com/rcooper/taskflow-api/internal/service"
)

// AnalyticsHandler handles the read-only analytics API requests.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler with the given
// dependencies.
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// TaskStatistics handles GET /analytics/tasks. Restricted to admins and
// managers by the route's role middleware.
func (h *AnalyticsHandler) TaskStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analyticsService.Statistics(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Task statistics retrieved successfully", stats)
}

// Productivity handles GET /analytics/productivity, reporting on the
// authenticated user's own workload.
func (h *AnalyticsHandler) Productivity(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}

	productivity, err := h.analyticsService.Productivity(r.Context(), principal.ID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Productivity metrics retrieved successfully", productivity)
}

// Team handles GET /analytics/team. Restricted to admins and managers by the
// route's role middleware.
func (h *AnalyticsHandler) Team(w http.ResponseWriter, r *http.Request) {
	team, err := h.analyticsService.Team(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Team analytics retrieved successfully", team)
}
