package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ru28/complaint-management-system/internal/domain"
	apperrors "github.com/Ru28/complaint-management-system/pkg/util"
)

// RequireRole ensures the principal holds one of the allowed roles.
// Authentication must already have run; a missing principal is treated
// as unauthenticated, a wrong role as forbidden.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAdmin guards admin-only operations.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
