package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/driveconnect/booking-api/docs"
	"github.com/driveconnect/booking-api/internal/api/handler"
	"github.com/driveconnect/booking-api/internal/api/metrics"
	"github.com/driveconnect/booking-api/internal/api/middleware"
	"github.com/driveconnect/booking-api/internal/core/domain"
	"github.com/driveconnect/booking-api/internal/core/ports"
)

// Dependencies are the services the router wires into handlers.
type Dependencies struct {
	Logger   zerolog.Logger
	Auth     ports.AuthService
	Bookings ports.BookingService
	Stats    ports.StatsService
	Users    ports.UserService

	// AuthRateLimit is the per-IP request rate allowed on /api/auth/*.
	// Zero disables limiting.
	AuthRateLimit float64
	// Readiness lists the external dependencies pinged by /health/ready.
	Readiness map[string]handler.PingFunc
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomiddleware.CORS())
	e.Use(metrics.Middleware())
	e.Use(middleware.RequestLogger(deps.Logger))
	// Recover sits inside the logger and metrics so a panic is returned as an
	// error, rendered once by the logger and counted as a 500.
	e.Use(echomiddleware.RecoverWithConfig(echomiddleware.RecoverConfig{
		DisableErrorHandler: true,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	bookingHandler := handler.NewBookingHandler(deps.Bookings)
	statsHandler := handler.NewStatsHandler(deps.Stats)
	userHandler := handler.NewUserHandler(deps.Users)
	healthHandler := handler.NewHealthHandler(deps.Readiness)

	// Middleware is attached per route: a group-level Use would turn
	// unmatched paths under the prefix into 401s instead of 404s.
	auth := middleware.Auth(deps.Auth)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	limit := middleware.RateLimit(deps.AuthRateLimit)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register, limit)
	e.POST("/api/auth/login", authHandler.Login, limit)
	e.POST("/api/auth/logout", authHandler.Logout)

	// --- Authenticated routes ---
	e.GET("/api/user/profile", userHandler.Profile, auth)
	e.GET("/api/dashboard/stats", statsHandler.Dashboard, auth)

	// Ownership rules for creation and status updates live in the booking service.
	e.GET("/api/client/bookings", bookingHandler.ListClient, auth, middleware.RBAC(domain.RoleClient))
	e.GET("/api/provider/bookings", bookingHandler.ListProvider, auth, middleware.RBAC(domain.RoleProvider))
	e.POST("/api/bookings", bookingHandler.Create, auth)
	e.PUT("/api/bookings/:id/status", bookingHandler.UpdateStatus, auth)

	// --- Admin routes ---
	e.GET("/api/admin/users", userHandler.List, auth, adminOnly)
	e.GET("/api/admin/bookings", bookingHandler.ListAll, auth, adminOnly)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
