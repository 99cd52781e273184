// Package memory holds process-resident repositories. State lives for the
// lifetime of the process and is lost on restart.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/driveconnect/booking-api/internal/core/domain"
)

// UserRepository keeps users in insertion order behind a RWMutex.
type UserRepository struct {
	mu     sync.RWMutex
	users  []*domain.User
	nextID int64
}

// NewUserRepository returns a repository holding a copy of seed.
func NewUserRepository(seed ...*domain.User) *UserRepository {
	r := &UserRepository{nextID: 1}
	for _, u := range seed {
		r.users = append(r.users, cloneUser(u))
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// FindByEmail matches emails case-insensitively.
func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u := r.byEmail(email); u != nil {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) byEmail(email string) *domain.User {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

// Insert checks email uniqueness and appends under one write lock, so two
// concurrent registrations of the same email cannot both succeed.
func (r *UserRepository) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byEmail(user.Email) != nil {
		return nil, domain.ErrEmailTaken
	}

	stored := cloneUser(user)
	stored.ID = r.nextID
	r.nextID++
	r.users = append(r.users, stored)

	return cloneUser(stored), nil
}
