package memory

import (
	"context"
	"sync"
	"time"

	"github.com/driveconnect/booking-api/internal/core/domain"
	"github.com/driveconnect/booking-api/internal/core/ports"
)

// BookingRepository keeps bookings in insertion order behind a RWMutex.
type BookingRepository struct {
	mu       sync.RWMutex
	bookings []*domain.Booking
	nextID   int64
}

func NewBookingRepository(seed ...*domain.Booking) *BookingRepository {
	r := &BookingRepository{nextID: 1}
	for _, b := range seed {
		clone := *b
		r.bookings = append(r.bookings, &clone)
		if b.ID >= r.nextID {
			r.nextID = b.ID + 1
		}
	}
	return r
}

func (r *BookingRepository) FindByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if b := r.byID(id); b != nil {
		clone := *b
		return &clone, nil
	}
	return nil, domain.ErrBookingNotFound
}

func (r *BookingRepository) byID(id int64) *domain.Booking {
	for _, b := range r.bookings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (r *BookingRepository) List(_ context.Context, f ports.BookingFilter) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		if f.ClientID != 0 && b.ClientID != f.ClientID {
			continue
		}
		if f.ProviderID != 0 && b.ProviderID != f.ProviderID {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (r *BookingRepository) Insert(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *booking
	stored.ID = r.nextID
	r.nextID++
	r.bookings = append(r.bookings, &stored)

	out := stored
	return &out, nil
}

func (r *BookingRepository) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := r.byID(id)
	if b == nil {
		return nil, domain.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now().UTC()

	out := *b
	return &out, nil
}
