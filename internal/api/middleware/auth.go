package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rcooper/taskflow-api/internal/api/shared"
	"github.com/rcooper/taskflow-api/internal/redact"
	"github.com/rcooper/taskflow-api/internal/service"
	"github.com/rcooper/taskflow-api/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
// After validating the bearer token it loads the user's current record so
// role changes take effect on the next request, not at the token's expiry.
type AuthMiddleware struct {
	jwtService  auth.JWTService
	userService service.UserService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, userService service.UserService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		userService: userService,
	}
}

// Authenticate validates JWT tokens from the Authorization header and adds
// the resolved principal to the request context for authorized requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		token := parts[1]

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrWrongTokenType):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				slog.Error("failed to validate token", "error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		user, err := m.userService.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				// Token is valid but the account no longer exists
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
				return
			}
			slog.Error("failed to load user for token", "error", redact.Error(err))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		}

		principal := user.Principal()
		ctx := shared.WithPrincipal(r.Context(), &principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
