package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/passengerdesk/auth-service/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   int
		detail string
	}{
		{"identity", domain.ErrInvalidIdentityToken, http.StatusBadRequest, "invalid identity token"},
		{"login", domain.ErrInvalidCredential, http.StatusBadRequest, "Incorrect username or password"},
		{"unauthenticated", fmt.Errorf("resolve: %w", domain.ErrUnauthenticated), http.StatusUnauthorized, "Invalid authentication credentials"},
		{"inactive", domain.ErrInactiveAccount, http.StatusBadRequest, "Inactive user"},
		{"passenger role", &domain.RoleError{Required: domain.RolePassenger, Actual: domain.RoleStaff}, http.StatusForbidden, "Access forbidden for non-passengers"},
		{"staff role", &domain.RoleError{Required: domain.RoleStaff, Actual: domain.RolePassenger}, http.StatusForbidden, "Access forbidden for non-staff"},
		{"not found", domain.ErrUserNotFound, http.StatusNotFound, "not found"},
		{"echo", echo.NewHTTPError(http.StatusUnprocessableEntity, "token is required"), http.StatusUnprocessableEntity, "token is required"},
		{"unexpected", errors.New("mongo: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	e := echo.New()
	h := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if got := detail(t, rec); got != tc.detail {
				t.Fatalf("expected detail %q, got %q", tc.detail, got)
			}
			wantChallenge := tc.code == http.StatusUnauthorized
			if (rec.Header().Get(echo.HeaderWWWAuthenticate) == "Bearer") != wantChallenge {
				t.Fatalf("WWW-Authenticate mismatch for %d", tc.code)
			}
		})
	}
}

func TestHTTPErrorHandler_HeadHasNoBody(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodHead, "/users/me", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrUnauthenticated, c)

	if rec.Code != http.StatusUnauthorized || rec.Body.Len() != 0 {
		t.Fatalf("unexpected HEAD response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrForbidden, c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response must be left alone")
	}
}
