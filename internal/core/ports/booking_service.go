package ports

import (
	"context"

	"github.com/driveconnect/booking-api/internal/core/domain"
)

// CreateBookingInput carries the booking form. The client is always the caller.
type CreateBookingInput struct {
	Service        string
	CarModel       string
	Date           string
	Time           string
	ProviderID     int64
	Price          int64
	IdempotencyKey string
}

// CreateBookingResult is returned by CreateBooking.
type CreateBookingResult struct {
	Booking *domain.Booking
	// Replayed is true when the Idempotency-Key matched an earlier booking.
	Replayed bool
}

// BookingService defines the role-scoped booking use cases.
type BookingService interface {
	ListClientBookings(ctx context.Context, identity domain.Identity) ([]*domain.Booking, error)
	ListProviderBookings(ctx context.Context, identity domain.Identity) ([]*domain.Booking, error)
	ListAllBookings(ctx context.Context, identity domain.Identity) ([]*domain.Booking, error)
	CreateBooking(ctx context.Context, identity domain.Identity, input CreateBookingInput) (*CreateBookingResult, error)
	UpdateBookingStatus(ctx context.Context, identity domain.Identity, bookingID int64, status domain.BookingStatus) (*domain.Booking, error)
}
