package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/passengerdesk/auth-service/internal/api/middleware"
	"github.com/passengerdesk/auth-service/internal/core/domain"
)

// currentUser returns the user injected by middleware.Authorize. A missing
// user means the route was registered without the middleware.
func currentUser(c echo.Context) (*domain.User, error) {
	u, ok := c.Get(middleware.UserKey).(*domain.User)
	if !ok || u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return u, nil
}
