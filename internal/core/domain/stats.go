package domain

// PlaceholderProviderRating is reported to providers until ratings exist.
const PlaceholderProviderRating = 4.8

// ClientStats is the dashboard aggregate for a client.
type ClientStats struct {
	TotalBookings     int   `json:"totalBookings"`
	CompletedServices int   `json:"completedServices"`
	TotalSpent        int64 `json:"totalSpent"`
	UpcomingBookings  int   `json:"upcomingBookings"`
}

// ProviderStats is the dashboard aggregate for a provider.
type ProviderStats struct {
	TotalBookings     int     `json:"totalBookings"`
	CompletedServices int     `json:"completedServices"`
	TotalEarnings     int64   `json:"totalEarnings"`
	AverageRating     float64 `json:"averageRating"`
}

// AdminStats is the platform-wide dashboard aggregate.
type AdminStats struct {
	TotalUsers       int   `json:"totalUsers"`
	ServiceProviders int   `json:"serviceProviders"`
	TotalBookings    int   `json:"totalBookings"`
	PlatformRevenue  int64 `json:"platformRevenue"`
}

// EmptyStats is returned for roles without a dashboard.
type EmptyStats struct{}
