package middleware

import (
	"net/http"

	"github.com/rcooper/taskflow-api/internal/api/shared"
	"github.com/rcooper/taskflow-api/internal/domain"
)

// RequireRoles returns middleware that rejects requests whose principal holds
// none of the given roles. It must run after Authenticate.
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := shared.GetPrincipal(r.Context())
			if !ok {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
				return
			}

			if !principal.HasAnyRole(roles...) {
				shared.RespondWithError(w, r, http.StatusForbidden,
					"You do not have permission to perform this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
