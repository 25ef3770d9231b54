package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/passengerdesk/auth-service/internal/api/metrics"
	"github.com/passengerdesk/auth-service/internal/core/access"
)

// UserKey is the echo context key holding the authorized *domain.User.
const UserKey = "user"

// Authorize resolves the bearer token through chain and injects the user into
// the context. The first failing gate's error is returned to the error
// handler unchanged.
func Authorize(chain *access.Chain) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request())
			if err != nil {
				metrics.AccessDecisionsTotal.WithLabelValues(access.GateAuthenticated, "denied").Inc()
				return err
			}

			d := chain.Evaluate(c.Request().Context(), token)
			if d.Err != nil {
				metrics.AccessDecisionsTotal.WithLabelValues(d.Gate, "denied").Inc()
				return d.Err
			}
			metrics.AccessDecisionsTotal.WithLabelValues("none", "allowed").Inc()

			c.Set(UserKey, d.User)
			return next(c)
		}
	}
}

// bearerToken reads "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return strings.TrimSpace(parts[1]), nil
}
