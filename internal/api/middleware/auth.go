package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/driveconnect/booking-api/internal/core/domain"
	"github.com/driveconnect/booking-api/internal/core/ports"
)

// Context keys set by Auth.
const (
	KeyUserID = "user_id"
	KeyEmail  = "email"
	KeyRole   = "role"
	KeyName   = "name"
)

// Client-facing messages shared by the access-control middleware.
const (
	msgTokenRequired = "Access token required"
	msgInvalidToken  = "Invalid token"
	msgAccessDenied  = "Access denied"
)

// Auth verifies the bearer token and injects its claims into the context.
// A missing token is 401; a token that fails verification is 403.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := verifier.VerifyToken(bearerToken(c.Request().Header.Get(echo.HeaderAuthorization)))
			if err != nil {
				if errors.Is(err, domain.ErrMissingToken) {
					return echo.NewHTTPError(http.StatusUnauthorized, msgTokenRequired).SetInternal(err)
				}
				return echo.NewHTTPError(http.StatusForbidden, msgInvalidToken).SetInternal(err)
			}

			c.Set(KeyUserID, identity.UserID)
			c.Set(KeyEmail, identity.Email)
			c.Set(KeyRole, identity.Role)
			c.Set(KeyName, identity.Name)

			return next(c)
		}
	}
}

// bearerToken returns the credential after the scheme, or "" when absent.
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
