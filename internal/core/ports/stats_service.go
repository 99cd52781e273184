package ports

import (
	"context"

	"github.com/driveconnect/booking-api/internal/core/domain"
)

// StatsService computes the role-shaped dashboard aggregate. The returned
// value is one of domain.ClientStats, domain.ProviderStats, domain.AdminStats
// or domain.EmptyStats.
type StatsService interface {
	DashboardStats(ctx context.Context, identity domain.Identity) (any, error)
}
