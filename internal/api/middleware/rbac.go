package middleware

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/driveconnect/booking-api/internal/core/domain"
)

// RBAC admits only identities whose role is one of roles. It reads the role
// stored by Auth, so it must be attached after it; a request without a role
// is denied. Unknown roles are a wiring mistake and panic at construction.
func RBAC(roles ...string) echo.MiddlewareFunc {
	if len(roles) == 0 {
		panic("middleware: RBAC needs at least one role")
	}
	for _, r := range roles {
		if !domain.ValidRole(r) {
			panic(fmt.Sprintf("middleware: RBAC given unknown role %q", r))
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := roleOf(c)
			if !slices.Contains(roles, role) {
				return echo.NewHTTPError(http.StatusForbidden, msgAccessDenied).
					SetInternal(fmt.Errorf("role %q on %s: %w", role, c.Path(), domain.ErrForbidden))
			}
			return next(c)
		}
	}
}

func roleOf(c echo.Context) string {
	role, _ := c.Get(KeyRole).(string)
	return role
}
