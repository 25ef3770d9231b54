package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/passengerdesk/auth-service/internal/core/access"
	"github.com/passengerdesk/auth-service/internal/core/domain"
)

// RBAC enforces role-based access control: base's gates run first, then the
// role check.
func RBAC(base *access.Chain, role domain.Role) echo.MiddlewareFunc {
	return Authorize(base.With(access.HasRole(role)))
}
