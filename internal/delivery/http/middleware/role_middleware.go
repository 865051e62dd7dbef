package middleware

import (
	"net/http"

	"nutritrack-backend/internal/domain/entity"
	"nutritrack-backend/pkg/response"
)

// RequireRole checks that the authenticated caller holds one of the allowed
// roles. The role is read from context, set by AuthMiddleware.
func RequireRole(allowedRoleIDs ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, allowedRoleID := range allowedRoleIDs {
				if roleID == allowedRoleID {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireNutritionist guards nutritionist-only endpoints
func RequireNutritionist(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDNutritionist)(next)
}

// RequirePatient guards patient-only endpoints
func RequirePatient(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDPatient)(next)
}
