package domain

import "errors"

var (
	ErrMissingToken        = errors.New("access token required")
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailTaken          = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrForbidden           = errors.New("access denied")
	ErrBadRequest          = errors.New("bad request")
	ErrIdempotencyInFlight = errors.New("idempotency key in flight") // an earlier request with the key is still running
)
