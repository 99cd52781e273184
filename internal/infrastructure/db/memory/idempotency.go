package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/driveconnect/booking-api/internal/core/domain"
)

const (
	idempotencyTTL = 24 * time.Hour
	// reservationTTL bounds how long a crashed request can hold a key.
	reservationTTL = time.Minute
)

// idempotencyEntry is a reservation while bookingID is zero.
type idempotencyEntry struct {
	bookingID int64
	expiresAt time.Time
}

// IdempotencyStore is the single-process fallback used when Redis is not
// configured. Expired keys are dropped lazily.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]idempotencyEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{
		entries: make(map[string]idempotencyEntry),
		ttl:     idempotencyTTL,
		now:     time.Now,
	}
}

func (s *IdempotencyStore) Reserve(_ context.Context, clientID int64, key string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := s.key(clientID, key)
	now := s.now()
	if e, ok := s.entries[k]; ok && now.Before(e.expiresAt) {
		if e.bookingID == 0 {
			return 0, false, domain.ErrIdempotencyInFlight
		}
		return e.bookingID, false, nil
	}

	s.entries[k] = idempotencyEntry{expiresAt: now.Add(reservationTTL)}
	return 0, true, nil
}

func (s *IdempotencyStore) Complete(_ context.Context, clientID int64, key string, bookingID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[s.key(clientID, key)] = idempotencyEntry{bookingID: bookingID, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *IdempotencyStore) Release(_ context.Context, clientID int64, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := s.key(clientID, key)
	if e, ok := s.entries[k]; ok && e.bookingID == 0 {
		delete(s.entries, k)
	}
	return nil
}

func (s *IdempotencyStore) key(clientID int64, key string) string {
	return fmt.Sprintf("%d:%s", clientID, key)
}
