package ports

import (
	"context"

	"github.com/driveconnect/booking-api/internal/core/domain"
)

// BookingFilter narrows List. Zero values mean no filter.
type BookingFilter struct {
	ClientID   int64
	ProviderID int64
}

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Booking, error)
	// List returns matching bookings in insertion order.
	List(ctx context.Context, filter BookingFilter) ([]*domain.Booking, error)
	Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
}
