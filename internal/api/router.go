package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/passengerdesk/auth-service/internal/api/handler"
	"github.com/passengerdesk/auth-service/internal/api/middleware"
	"github.com/passengerdesk/auth-service/internal/core/access"
	"github.com/passengerdesk/auth-service/internal/core/domain"
	"github.com/passengerdesk/auth-service/internal/core/ports"

	_ "github.com/passengerdesk/auth-service/internal/docs"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Log         zerolog.Logger
	Credentials ports.CredentialService
	Identity    ports.IdentityService
	Sessions    ports.SessionStore
	// Health lists the backends probed by /health/ready.
	Health map[string]handler.Pinger

	CORSAllowedOrigins []string

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registerer,
	}))
	if len(deps.CORSAllowedOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins:     deps.CORSAllowedOrigins,
			AllowCredentials: true,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		}))
	}

	// --- External identity flow (session backed) ---
	sessions := echo.WrapMiddleware(deps.Sessions.Handler)
	identityHandler := handler.NewIdentityHandler(deps.Identity, deps.Sessions)

	e.GET("/auth", identityHandler.Authenticate, sessions)
	e.GET("/", identityHandler.Home, sessions)
	e.POST("/logout", identityHandler.Logout, sessions)

	// --- Mock credential flow (bearer + gate chain) ---
	credentialHandler := handler.NewCredentialHandler(deps.Credentials)
	active := access.NewChain(deps.Credentials, access.Active())

	e.POST("/token", credentialHandler.Token)
	e.GET("/users/me", credentialHandler.Me, middleware.Authorize(active))
	e.GET("/passenger/reservations", credentialHandler.PassengerReservations, middleware.RBAC(active, domain.RolePassenger))
	e.GET("/staff/dashboard", credentialHandler.StaffDashboard, middleware.RBAC(active, domain.RoleStaff))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.Health)

	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request. Only the path is logged;
// the query of /auth carries identity tokens.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURIPath:   true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
