package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/driveconnect/booking-api/internal/core/domain"
)

const (
	idempotencyTTL = 24 * time.Hour
	reservationTTL = time.Minute
	// pendingMarker is stored while the reserving request creates its booking.
	pendingMarker = "pending"
)

// IdempotencyStore maps a client's Idempotency-Key to the booking it created.
// Key format: idem:booking:<client_id>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL}
}

// Reserve claims the key with SETNX. A key that expires between the SETNX and
// the GET is claimed again on the second pass.
func (s *IdempotencyStore) Reserve(ctx context.Context, clientID int64, key string) (int64, bool, error) {
	k := s.key(clientID, key)
	for attempt := 0; attempt < 2; attempt++ {
		claimed, err := s.client.SetNX(ctx, k, pendingMarker, reservationTTL).Result()
		if err != nil {
			return 0, false, fmt.Errorf("idempotency reserve: %w", err)
		}
		if claimed {
			return 0, true, nil
		}

		val, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return 0, false, fmt.Errorf("idempotency reserve: %w", err)
		}
		return parseEntry(val)
	}
	return 0, false, domain.ErrIdempotencyInFlight
}

// Complete overwrites the pending marker with the booking id.
func (s *IdempotencyStore) Complete(ctx context.Context, clientID int64, key string, bookingID int64) error {
	if err := s.client.Set(ctx, s.key(clientID, key), bookingID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, clientID int64, key string) error {
	if err := s.client.Del(ctx, s.key(clientID, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(clientID int64, key string) string {
	return fmt.Sprintf("idem:booking:%d:%s", clientID, key)
}

// parseEntry decodes a stored value: the pending marker or a booking id.
func parseEntry(val string) (int64, bool, error) {
	if val == pendingMarker {
		return 0, false, domain.ErrIdempotencyInFlight
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("idempotency reserve: corrupt value %q: %w", val, err)
	}
	return id, false, nil
}
