package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rcooper/taskflow-api/internal/api"
	apiMiddleware "github.com/rcooper/taskflow-api/internal/api/middleware"
	"github.com/rcooper/taskflow-api/internal/domain"
	"github.com/rcooper/taskflow-api/internal/platform/metrics"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.passwordVerifier, app.metrics)
	taskHandler := api.NewTaskHandler(app.taskService)
	notificationHandler := api.NewNotificationHandler(app.notificationService)
	userHandler := api.NewUserHandler(app.userService)
	analyticsHandler := api.NewAnalyticsHandler(app.analyticsService)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userService)
	requireManagement := apiMiddleware.RequireRoles(domain.RoleAdmin, domain.RoleManager)
	authRateLimiter := apiMiddleware.NewRateLimiter(apiMiddleware.DefaultAuthRateLimitConfig())

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public, rate limited)
		r.Group(func(r chi.Router) {
			r.Use(authRateLimiter.Limit)
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
			r.Post("/auth/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/validate", authHandler.Validate)
			r.Post("/auth/logout", authHandler.Logout)

			// Task endpoints
			r.Post("/tasks", taskHandler.Create)
			r.Get("/tasks", taskHandler.List)
			r.Get("/tasks/search", taskHandler.Search)
			r.Get("/tasks/{id}", taskHandler.Get)
			r.Put("/tasks/{id}", taskHandler.Update)
			r.Delete("/tasks/{id}", taskHandler.Delete)
			r.Patch("/tasks/{id}/status", taskHandler.UpdateStatus)
			r.With(requireManagement).Put("/tasks/{id}/assign", taskHandler.Assign)

			// Notification endpoints
			r.Get("/notifications", notificationHandler.List)
			r.Get("/notifications/unread", notificationHandler.ListUnread)
			r.Get("/notifications/unread/count", notificationHandler.CountUnread)
			r.Patch("/notifications/{id}/read", notificationHandler.MarkRead)
			r.Patch("/notifications/read-all", notificationHandler.MarkAllRead)

			// User directory endpoints
			r.Get("/users/me", userHandler.Me)
			r.With(requireManagement).Get("/users", userHandler.List)
			r.With(requireManagement).Get("/users/{id}", userHandler.Get)
			r.With(requireManagement).Get("/users/username/{username}", userHandler.GetByUsername)
			r.With(requireManagement).Get("/users/role/{role}", userHandler.ListByRole)

			// Analytics endpoints
			r.Get("/analytics/productivity", analyticsHandler.Productivity)
			r.With(requireManagement).Get("/analytics/tasks", analyticsHandler.TaskStatistics)
			r.With(requireManagement).Get("/analytics/team", analyticsHandler.Team)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Prometheus scrape endpoint
	r.Method(http.MethodGet, "/metrics", metrics.Handler(app.registry))

	return r
}
