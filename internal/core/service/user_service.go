package service

import (
	"context"
	"fmt"

	"github.com/driveconnect/booking-api/internal/core/domain"
	"github.com/driveconnect/booking-api/internal/core/ports"
)

type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Profile returns the caller's own account. A token can outlive its user
// when the store is reset, hence ErrUserNotFound.
func (s *UserService) Profile(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	return s.repo.FindByID(ctx, identity.UserID)
}

// ListUsers is the admin-only user directory.
func (s *UserService) ListUsers(ctx context.Context, identity domain.Identity) ([]*domain.User, error) {
	if identity.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}
