package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/driveconnect/booking-api/internal/core/domain"
	"github.com/driveconnect/booking-api/internal/core/ports"
)

func newTestAuthService(repo ports.UserRepository) *AuthService {
	return NewAuthService(repo, "secret", time.Hour, bcrypt.MinCost, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	res, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "alice@example.com", Password: "pass123", Name: "Alice", Phone: "+91 1",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token")
	}
	if res.User.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if res.User.Role != domain.RoleClient {
		t.Fatalf("expected default role client, got %s", res.User.Role)
	}
	if res.User.ID != 1 {
		t.Fatalf("expected id 1, got %d", res.User.ID)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	in := ports.RegisterInput{Email: "bob@example.com", Password: "pass123", Name: "Bob"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Password: "x"}); !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest for missing email, got %v", err)
	}
	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "c@example.com", Password: "pass123", Role: "superuser"})
	if !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest for unknown role, got %v", err)
	}
}

func TestAuthService_Register_ProviderRole(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	res, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "p@example.com", Password: "pass123", Name: "P", Role: domain.RoleProvider,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if res.User.Role != domain.RoleProvider {
		t.Fatalf("expected provider role, got %s", res.User.Role)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "carol@example.com", Password: "s3cret", Name: "Carol", Role: domain.RoleAdmin,
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.User.Name != "Carol" {
		t.Fatalf("unexpected user: %+v", res.User)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(res.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %v", domain.RoleAdmin, claims["role"])
	}
	if claims["email"] != "carol@example.com" || claims["name"] != "Carol" {
		t.Fatalf("unexpected claims: %v", claims)
	}
	if claims["id"] != float64(res.User.ID) {
		t.Fatalf("expected id claim %d, got %v", res.User.ID, claims["id"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("expected exp claim")
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())
	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "dave@example.com", Password: "goodpass", Name: "Dave"})

	_, wrongPass := svc.Login(context.Background(), "dave@example.com", "badpass")
	_, unknown := svc.Login(context.Background(), "ghost@example.com", "goodpass")

	if wrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if unknown != wrongPass {
		t.Fatalf("unknown email and wrong password must yield the same error: %v vs %v", unknown, wrongPass)
	}
}

func TestAuthService_VerifyToken_RoundTrip(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())
	user := &domain.User{ID: 7, Email: "e@example.com", Role: domain.RoleProvider, Name: "Eve"}

	token, err := svc.IssueToken(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	identity, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if identity != domain.IdentityOf(user) {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestAuthService_VerifyToken_Errors(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.VerifyToken(""); !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if _, err := svc.VerifyToken("not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	other := NewAuthService(newStubUserRepo(), "other-secret", time.Hour, bcrypt.MinCost, zerolog.Nop())
	foreign, _ := other.IssueToken(&domain.User{ID: 1, Role: domain.RoleAdmin})
	if _, err := svc.VerifyToken(foreign); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestAuthService_VerifyToken_Expired(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())
	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }

	token, err := svc.IssueToken(&domain.User{ID: 1, Role: domain.RoleClient})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.VerifyToken(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestAuthService_DefaultTTL(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", 0, 0, zerolog.Nop())
	if svc.tokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h default TTL, got %s", svc.tokenTTL)
	}
	if svc.bcryptCost != bcrypt.DefaultCost {
		t.Fatalf("expected default bcrypt cost, got %d", svc.bcryptCost)
	}
}
