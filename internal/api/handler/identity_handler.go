package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/passengerdesk/auth-service/internal/api/metrics"
	"github.com/passengerdesk/auth-service/internal/core/domain"
	"github.com/passengerdesk/auth-service/internal/core/ports"
)

// SessionUserKey is the session key holding the verified identity.
const SessionUserKey = "user"

// IdentityHandler serves the external identity flow.
type IdentityHandler struct {
	identity ports.IdentityService
	sessions ports.SessionStore
}

func NewIdentityHandler(identity ports.IdentityService, sessions ports.SessionStore) *IdentityHandler {
	return &IdentityHandler{identity: identity, sessions: sessions}
}

type authQuery struct {
	Token string `query:"token" validate:"required"`
}

// Authenticate verifies an ID token and stores the email in the session.
//
// @Summary      Sign in with an identity provider token
// @Tags         identity
// @Produce      json
// @Param        token  query     string  true  "ID token issued by the identity provider"
// @Success      200    {string}  string  "<name> Logged In successfully"
// @Failure      400    {object}  map[string]string
// @Failure      422    {object}  map[string]string
// @Router       /auth [get]
func (h *IdentityHandler) Authenticate(c echo.Context) error {
	var q authQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid query").SetInternal(err)
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	start := time.Now()
	claims, err := h.identity.Authenticate(c.Request().Context(), q.Token)
	metrics.IdentityVerificationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.IdentityVerificationsTotal.WithLabelValues("rejected").Inc()
		return err
	}
	metrics.IdentityVerificationsTotal.WithLabelValues("success").Inc()

	if err := h.sessions.Put(c.Response(), c.Request(), SessionUserKey, domain.SessionUser{Email: claims.Email}); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	return c.JSON(http.StatusOK, claims.Name+" Logged In successfully")
}

// Home greets the user stored in the session. A missing session is still a
// 200 with a plain message.
//
// @Summary      Session greeting
// @Tags         identity
// @Produce      json
// @Success      200  {string}  string  "hi <email>"
// @Router       / [get]
func (h *IdentityHandler) Home(c echo.Context) error {
	user, ok, err := h.sessions.Get(c.Request(), SessionUserKey)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return c.JSON(http.StatusOK, "User not found in session")
	}
	return c.JSON(http.StatusOK, "hi "+user.Email)
}

// Logout drops the session.
//
// @Summary      Sign out
// @Tags         identity
// @Success      204
// @Router       /logout [post]
func (h *IdentityHandler) Logout(c echo.Context) error {
	if err := h.sessions.Destroy(c.Response(), c.Request()); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return c.NoContent(http.StatusNoContent)
}
