package ports

import (
	"context"

	"github.com/driveconnect/booking-api/internal/core/domain"
)

// UserService serves the profile and the admin user directory.
type UserService interface {
	Profile(ctx context.Context, identity domain.Identity) (*domain.User, error)
	ListUsers(ctx context.Context, identity domain.Identity) ([]*domain.User, error)
}
