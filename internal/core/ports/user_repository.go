package ports

import (
	"context"

	"github.com/driveconnect/booking-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns every user in insertion order.
	List(ctx context.Context) ([]*domain.User, error)
	// Insert assigns the next sequential id and stores the user. It returns
	// domain.ErrEmailTaken when the email is already registered.
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
}
