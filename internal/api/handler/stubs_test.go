package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/driveconnect/booking-api/internal/api/middleware"
	"github.com/driveconnect/booking-api/internal/core/domain"
	"github.com/driveconnect/booking-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) IssueToken(*domain.User) (string, error) { return "token", nil }

func (s *stubAuthService) VerifyToken(string) (domain.Identity, error) {
	return domain.Identity{}, domain.ErrInvalidToken
}

type stubBookingService struct {
	listFn   func(ctx context.Context, identity domain.Identity) ([]*domain.Booking, error)
	createFn func(ctx context.Context, identity domain.Identity, input ports.CreateBookingInput) (*ports.CreateBookingResult, error)
	updateFn func(ctx context.Context, identity domain.Identity, id int64, status domain.BookingStatus) (*domain.Booking, error)
}

func (s *stubBookingService) ListClientBookings(ctx context.Context, identity domain.Identity) ([]*domain.Booking, error) {
	return s.listFn(ctx, identity)
}

func (s *stubBookingService) ListProviderBookings(ctx context.Context, identity domain.Identity) ([]*domain.Booking, error) {
	return s.listFn(ctx, identity)
}

func (s *stubBookingService) ListAllBookings(ctx context.Context, identity domain.Identity) ([]*domain.Booking, error) {
	return s.listFn(ctx, identity)
}

func (s *stubBookingService) CreateBooking(ctx context.Context, identity domain.Identity, input ports.CreateBookingInput) (*ports.CreateBookingResult, error) {
	return s.createFn(ctx, identity, input)
}

func (s *stubBookingService) UpdateBookingStatus(ctx context.Context, identity domain.Identity, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	return s.updateFn(ctx, identity, id, status)
}

type stubStatsService func(ctx context.Context, identity domain.Identity) (any, error)

func (f stubStatsService) DashboardStats(ctx context.Context, identity domain.Identity) (any, error) {
	return f(ctx, identity)
}

type stubUserService struct {
	profileFn func(ctx context.Context, identity domain.Identity) (*domain.User, error)
	listFn    func(ctx context.Context, identity domain.Identity) ([]*domain.User, error)
}

func (s *stubUserService) Profile(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	return s.profileFn(ctx, identity)
}

func (s *stubUserService) ListUsers(ctx context.Context, identity domain.Identity) ([]*domain.User, error) {
	return s.listFn(ctx, identity)
}

var (
	clientIdentity   = domain.Identity{UserID: 1, Email: "john@example.com", Role: domain.RoleClient, Name: "John Doe"}
	providerIdentity = domain.Identity{UserID: 2, Email: "amit@example.com", Role: domain.RoleProvider, Name: "Amit Kumar"}
	adminIdentity    = domain.Identity{UserID: 3, Email: "admin@example.com", Role: domain.RoleAdmin, Name: "Admin"}
)

// newContext builds an echo context with the validator installed. A non-nil
// identity is injected the way the Auth middleware does it.
func newContext(method, target string, body io.Reader, identity *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if identity != nil {
		c.Set(middleware.KeyUserID, identity.UserID)
		c.Set(middleware.KeyEmail, identity.Email)
		c.Set(middleware.KeyRole, identity.Role)
		c.Set(middleware.KeyName, identity.Name)
	}
	return c, rec
}

// requireHTTPError fails unless err is an *echo.HTTPError with the given code.
func requireHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError %d, got %v", code, err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d (%v)", code, he.Code, he.Message)
	}
	return he
}
