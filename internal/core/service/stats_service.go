package service

import (
	"context"
	"fmt"

	"github.com/driveconnect/booking-api/internal/core/domain"
	"github.com/driveconnect/booking-api/internal/core/ports"
)

type StatsService struct {
	users    ports.UserRepository
	bookings ports.BookingRepository
}

func NewStatsService(users ports.UserRepository, bookings ports.BookingRepository) *StatsService {
	return &StatsService{users: users, bookings: bookings}
}

// DashboardStats aggregates bookings (and users, for admins) for the caller's role.
func (s *StatsService) DashboardStats(ctx context.Context, identity domain.Identity) (any, error) {
	switch identity.Role {
	case domain.RoleClient:
		own, err := s.bookings.List(ctx, ports.BookingFilter{ClientID: identity.UserID})
		if err != nil {
			return nil, fmt.Errorf("client stats: %w", err)
		}
		stats := domain.ClientStats{TotalBookings: len(own)}
		for _, b := range own {
			stats.TotalSpent += b.Price
			if b.Status == domain.StatusCompleted {
				stats.CompletedServices++
			}
			if b.Status.Upcoming() {
				stats.UpcomingBookings++
			}
		}
		return stats, nil

	case domain.RoleProvider:
		own, err := s.bookings.List(ctx, ports.BookingFilter{ProviderID: identity.UserID})
		if err != nil {
			return nil, fmt.Errorf("provider stats: %w", err)
		}
		stats := domain.ProviderStats{
			TotalBookings: len(own),
			AverageRating: domain.PlaceholderProviderRating,
		}
		for _, b := range own {
			stats.TotalEarnings += b.Price
			if b.Status == domain.StatusCompleted {
				stats.CompletedServices++
			}
		}
		return stats, nil

	case domain.RoleAdmin:
		users, err := s.users.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("admin stats: %w", err)
		}
		all, err := s.bookings.List(ctx, ports.BookingFilter{})
		if err != nil {
			return nil, fmt.Errorf("admin stats: %w", err)
		}
		stats := domain.AdminStats{TotalUsers: len(users), TotalBookings: len(all)}
		for _, u := range users {
			if u.Role == domain.RoleProvider {
				stats.ServiceProviders++
			}
		}
		for _, b := range all {
			stats.PlatformRevenue += b.Price
		}
		return stats, nil
	}

	return domain.EmptyStats{}, nil
}
