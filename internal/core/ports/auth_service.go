package ports

import (
	"context"

	"github.com/driveconnect/booking-api/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Role     string // empty means client
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// TokenVerifier decodes bearer tokens into identities.
type TokenVerifier interface {
	VerifyToken(token string) (domain.Identity, error)
}

type AuthService interface {
	TokenVerifier
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	IssueToken(user *domain.User) (string, error)
}
