package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/passengerdesk/auth-service/internal/core/domain"
)

const (
	detailInvalidLogin      = "Incorrect username or password"
	detailInvalidIdentity   = "invalid identity token"
	detailUnauthenticated   = "Invalid authentication credentials"
	detailInactive          = "Inactive user"
	detailNotFound          = "not found"
	detailInternal          = "internal server error"
	forbiddenDetailTemplate = "Access forbidden for non-%s"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Detail string `json:"detail"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the auth error taxonomy to status codes and fixed messages.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"detail": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if code == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Detail: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("http error")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var roleErr *domain.RoleError
	switch {
	case errors.Is(err, domain.ErrInvalidIdentityToken):
		return http.StatusBadRequest, detailInvalidIdentity
	case errors.Is(err, domain.ErrInvalidCredential):
		return http.StatusBadRequest, detailInvalidLogin
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, detailUnauthenticated
	case errors.Is(err, domain.ErrInactiveAccount):
		return http.StatusBadRequest, detailInactive
	case errors.As(err, &roleErr):
		return http.StatusForbidden, forbiddenDetail(roleErr.Required)
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.ErrForbidden.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, detailNotFound
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, detailInternal
}

func forbiddenDetail(role domain.Role) string {
	switch role {
	case domain.RolePassenger:
		return fmt.Sprintf(forbiddenDetailTemplate, "passengers")
	default:
		return fmt.Sprintf(forbiddenDetailTemplate, role)
	}
}
