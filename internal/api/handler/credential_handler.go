package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/passengerdesk/auth-service/internal/api/metrics"
	"github.com/passengerdesk/auth-service/internal/core/domain"
	"github.com/passengerdesk/auth-service/internal/core/ports"
)

// CredentialHandler serves the username/password flow and the bearer
// protected resources.
type CredentialHandler struct {
	credentials ports.CredentialService
}

func NewCredentialHandler(credentials ports.CredentialService) *CredentialHandler {
	return &CredentialHandler{credentials: credentials}
}

type tokenRequest struct {
	Username  string `form:"username" validate:"required,max=256"`
	Password  string `form:"password" validate:"required,max=256"`
	GrantType string `form:"grant_type" validate:"omitempty,eq=password"`
	Scope     string `form:"scope"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type messageResponse struct {
	Msg string `json:"msg"`
}

// Token exchanges a username and password for an access token.
//
// @Summary      Password login
// @Tags         credentials
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username    formData  string  true   "Username"
// @Param        password    formData  string  true   "Password"
// @Param        grant_type  formData  string  false  "Must be \"password\" when present"
// @Success      200  {object}  tokenResponse
// @Failure      400  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /token [post]
func (h *CredentialHandler) Token(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid form payload").SetInternal(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.credentials.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredential) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credential").Inc()
			return err
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("login: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me returns the authenticated, active user.
//
// @Summary      Current user
// @Tags         credentials
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /users/me [get]
func (h *CredentialHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// PassengerReservations is reachable by active passengers only.
//
// @Summary      Passenger reservations
// @Tags         passenger
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /passenger/reservations [get]
func (h *CredentialHandler) PassengerReservations(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Msg: "Reservations for passenger " + user.Username})
}

// StaffDashboard is reachable by active staff only.
//
// @Summary      Staff dashboard
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /staff/dashboard [get]
func (h *CredentialHandler) StaffDashboard(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Msg: "Dashboard for staff " + user.Username})
}
