package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/driveconnect/booking-api/internal/api/middleware"
	"github.com/driveconnect/booking-api/internal/core/domain"
)

// ctxIdentity rebuilds the identity injected by the Auth middleware. A missing
// user id or role means the route was registered without Auth.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, _ := c.Get(middleware.KeyUserID).(int64)
	role, _ := c.Get(middleware.KeyRole).(string)
	if id == 0 || role == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}

	email, _ := c.Get(middleware.KeyEmail).(string)
	name, _ := c.Get(middleware.KeyName).(string)
	return domain.Identity{UserID: id, Email: email, Role: role, Name: name}, nil
}
