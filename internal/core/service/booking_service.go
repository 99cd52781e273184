package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/driveconnect/booking-api/internal/core/domain"
	"github.com/driveconnect/booking-api/internal/core/ports"
)

type BookingService struct {
	repo     ports.BookingRepository
	idem     ports.IdempotencyStore
	location string
	logger   zerolog.Logger
	now      func() time.Time
}

// NewBookingService wires the booking use cases. idem may be nil, in which
// case Idempotency-Key headers are ignored. location is stamped on every new booking.
func NewBookingService(repo ports.BookingRepository, idem ports.IdempotencyStore, location string, logger zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, idem: idem, location: location, logger: logger, now: time.Now}
}

func (s *BookingService) ListClientBookings(ctx context.Context, identity domain.Identity) ([]*domain.Booking, error) {
	if identity.Role != domain.RoleClient {
		return nil, domain.ErrForbidden
	}
	return s.list(ctx, ports.BookingFilter{ClientID: identity.UserID})
}

func (s *BookingService) ListProviderBookings(ctx context.Context, identity domain.Identity) ([]*domain.Booking, error) {
	if identity.Role != domain.RoleProvider {
		return nil, domain.ErrForbidden
	}
	return s.list(ctx, ports.BookingFilter{ProviderID: identity.UserID})
}

func (s *BookingService) ListAllBookings(ctx context.Context, identity domain.Identity) ([]*domain.Booking, error) {
	if identity.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.list(ctx, ports.BookingFilter{})
}

func (s *BookingService) list(ctx context.Context, filter ports.BookingFilter) ([]*domain.Booking, error) {
	bookings, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	return bookings, nil
}

// CreateBooking books a service on behalf of the caller. The client id always
// comes from the identity, never from the input.
func (s *BookingService) CreateBooking(ctx context.Context, identity domain.Identity, in ports.CreateBookingInput) (*ports.CreateBookingResult, error) {
	if in.ProviderID <= 0 {
		return nil, fmt.Errorf("%w: providerId must be a positive integer", domain.ErrBadRequest)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrBadRequest)
	}

	claimed, replay, err := s.claim(ctx, identity.UserID, in.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if replay != nil {
		return &ports.CreateBookingResult{Booking: replay, Replayed: true}, nil
	}

	now := s.now().UTC()
	created, err := s.repo.Insert(ctx, &domain.Booking{
		ClientID:   identity.UserID,
		ProviderID: in.ProviderID,
		Service:    in.Service,
		CarModel:   in.CarModel,
		Date:       in.Date,
		Time:       in.Time,
		Status:     domain.StatusPending,
		Price:      in.Price,
		Location:   s.location,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("client_id", identity.UserID).Msg("failed to create booking")
		if claimed {
			if relErr := s.idem.Release(ctx, identity.UserID, in.IdempotencyKey); relErr != nil {
				s.logger.Warn().Err(relErr).Str("idempotency_key", in.IdempotencyKey).Msg("failed to release idempotency key")
			}
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if claimed {
		if err := s.idem.Complete(ctx, identity.UserID, in.IdempotencyKey, created.ID); err != nil {
			s.logger.Warn().Err(err).Int64("booking_id", created.ID).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().
		Int64("booking_id", created.ID).
		Int64("client_id", created.ClientID).
		Int64("provider_id", created.ProviderID).
		Msg("booking created")

	return &ports.CreateBookingResult{Booking: created}, nil
}

// claim reserves the Idempotency-Key before a booking is inserted. It returns
// the earlier booking when the key was already used, and
// domain.ErrIdempotencyInFlight while another request holds it. An
// unavailable store does not block creation.
func (s *BookingService) claim(ctx context.Context, clientID int64, key string) (bool, *domain.Booking, error) {
	if key == "" || s.idem == nil {
		return false, nil, nil
	}

	bookingID, reserved, err := s.idem.Reserve(ctx, clientID, key)
	switch {
	case errors.Is(err, domain.ErrIdempotencyInFlight):
		return false, nil, err
	case err != nil:
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency reserve failed, creating anyway")
		return false, nil, nil
	case reserved:
		return true, nil, nil
	}

	existing, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		if !errors.Is(err, domain.ErrBookingNotFound) {
			s.logger.Warn().Err(err).Int64("booking_id", bookingID).Msg("idempotent replay lookup failed")
		}
		// The key points at a booking that is gone; the new one takes it over.
		return true, nil, nil
	}

	s.logger.Info().Str("idempotency_key", key).Int64("booking_id", existing.ID).Msg("idempotent replay")
	return false, existing, nil
}

// UpdateBookingStatus overwrites the status. Clients and providers may only
// touch their own bookings; admins may touch any. Every known status may
// follow every other.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, identity domain.Identity, bookingID int64, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrBadRequest, status)
	}

	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch identity.Role {
	case domain.RoleClient:
		if booking.ClientID != identity.UserID {
			return nil, domain.ErrForbidden
		}
	case domain.RoleProvider:
		if booking.ProviderID != identity.UserID {
			return nil, domain.ErrForbidden
		}
	}

	updated, err := s.repo.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	s.logger.Info().
		Int64("booking_id", bookingID).
		Str("from", string(booking.Status)).
		Str("to", string(status)).
		Str("by_role", identity.Role).
		Msg("booking status changed")

	return updated, nil
}
