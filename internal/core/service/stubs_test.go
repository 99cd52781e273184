package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/driveconnect/booking-api/internal/core/domain"
	"github.com/driveconnect/booking-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     []*domain.User
	insertErr error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	return &stubUserRepo{users: users}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	clone := cloneUser(user)
	clone.ID = int64(len(r.users) + 1)
	r.users = append(r.users, clone)
	return cloneUser(clone), nil
}

type stubBookingRepo struct {
	bookings  []*domain.Booking
	listErr   error
	insertErr error
}

func newStubBookingRepo(bookings ...*domain.Booking) *stubBookingRepo {
	return &stubBookingRepo{bookings: bookings}
}

func (r *stubBookingRepo) FindByID(_ context.Context, id int64) (*domain.Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			clone := *b
			return &clone, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (r *stubBookingRepo) List(_ context.Context, f ports.BookingFilter) ([]*domain.Booking, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.Booking
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

func (r *stubBookingRepo) Insert(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	clone := *b
	clone.ID = int64(len(r.bookings) + 1)
	r.bookings = append(r.bookings, &clone)
	out := clone
	return &out, nil
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			b.Status = status
			clone := *b
			return &clone, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

// stubIdempotencyStore keeps reservations as zero ids.
type stubIdempotencyStore struct {
	mu         sync.Mutex
	keys       map[string]int64
	reserveErr error
}

func newStubIdempotencyStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{keys: make(map[string]int64)}
}

func (s *stubIdempotencyStore) key(clientID int64, key string) string {
	return fmt.Sprintf("%d:%s", clientID, key)
}

func (s *stubIdempotencyStore) Reserve(_ context.Context, clientID int64, key string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reserveErr != nil {
		return 0, false, s.reserveErr
	}
	id, ok := s.keys[s.key(clientID, key)]
	switch {
	case !ok:
		s.keys[s.key(clientID, key)] = 0
		return 0, true, nil
	case id == 0:
		return 0, false, domain.ErrIdempotencyInFlight
	default:
		return id, false, nil
	}
}

func (s *stubIdempotencyStore) Complete(_ context.Context, clientID int64, key string, bookingID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[s.key(clientID, key)] = bookingID
	return nil
}

func (s *stubIdempotencyStore) Release(_ context.Context, clientID int64, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, s.key(clientID, key))
	return nil
}

// slowBookingRepo delays every insert so concurrent creations overlap.
type slowBookingRepo struct {
	*stubBookingRepo
	mu    sync.Mutex
	delay time.Duration
}

func (r *slowBookingRepo) Insert(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	time.Sleep(r.delay)
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stubBookingRepo.Insert(ctx, b)
}

func (r *slowBookingRepo) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stubBookingRepo.FindByID(ctx, id)
}

func (r *slowBookingRepo) stored() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

// seedBookings mirrors the demo data: client 1 booked provider 2 twice.
func seedBookings() []*domain.Booking {
	return []*domain.Booking{
		{ID: 1, ClientID: 1, ProviderID: 2, Service: "Interior & Exterior Wash", CarModel: "Honda City", Status: domain.StatusConfirmed, Price: 499, Location: "Mumbai"},
		{ID: 2, ClientID: 1, ProviderID: 2, Service: "Wheel Balancing", CarModel: "Honda City", Status: domain.StatusPending, Price: 299, Location: "Mumbai"},
	}
}

var (
	clientIdentity   = domain.Identity{UserID: 1, Email: "client@example.com", Role: domain.RoleClient, Name: "Rahul Sharma"}
	providerIdentity = domain.Identity{UserID: 2, Email: "provider@example.com", Role: domain.RoleProvider, Name: "Amit Kumar"}
	adminIdentity    = domain.Identity{UserID: 3, Email: "admin@example.com", Role: domain.RoleAdmin, Name: "Admin User"}
)
