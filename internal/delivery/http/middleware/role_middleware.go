package middleware

import (
	"net/http"

	"go-clinic-registry/internal/domain/entity"
	"go-clinic-registry/pkg/response"
)

// RequireRole gates a route to actors holding any of the given roles.
// The role is read from context, set by AuthMiddleware from the JWT claims.
func RequireRole(allowedRoles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, allowedRole := range allowedRoles {
				if entity.Role(role) == allowedRole {
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

// RequireDoctorOrStaff gates routes that act on a doctor's behalf
func RequireDoctorOrStaff(next http.Handler) http.Handler {
	return RequireRole(entity.RoleDoctor, entity.RoleStaff)(next)
}
