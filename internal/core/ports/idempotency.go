package ports

import "context"

// IdempotencyStore remembers which booking a client's Idempotency-Key produced.
//
// A key moves from absent to reserved (Reserve) to completed (Complete). A
// reservation that never completes is dropped by Release or by its own expiry.
type IdempotencyStore interface {
	// Reserve atomically claims key. reserved=true means the caller owns the
	// key and must Complete or Release it. Otherwise bookingID is the booking
	// an earlier request created, or err is domain.ErrIdempotencyInFlight
	// while that request is still running.
	Reserve(ctx context.Context, clientID int64, key string) (bookingID int64, reserved bool, err error)
	// Complete records the booking created under a reservation.
	Complete(ctx context.Context, clientID int64, key string, bookingID int64) error
	// Release drops a reservation whose booking could not be created.
	Release(ctx context.Context, clientID int64, key string) error
}
