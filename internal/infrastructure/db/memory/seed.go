package memory

import "github.com/driveconnect/booking-api/internal/core/domain"

// demoPasswordHash is bcrypt("password", cost 10).
const demoPasswordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

// DemoUsers returns the accounts every fresh process starts with.
func DemoUsers() []*domain.User {
	return []*domain.User{
		{ID: 1, Email: "client@example.com", PasswordHash: demoPasswordHash, Name: "Rahul Sharma", Role: domain.RoleClient, Phone: "+91 9876543210"},
		{ID: 2, Email: "provider@example.com", PasswordHash: demoPasswordHash, Name: "Amit Kumar", Role: domain.RoleProvider, Phone: "+91 9876543211"},
		{ID: 3, Email: "admin@example.com", PasswordHash: demoPasswordHash, Name: "Admin User", Role: domain.RoleAdmin, Phone: "+91 9876543212"},
	}
}

// DemoBookings returns the bookings every fresh process starts with.
func DemoBookings() []*domain.Booking {
	return []*domain.Booking{
		{
			ID: 1, ClientID: 1, ProviderID: 2,
			Service: "Interior & Exterior Wash", CarModel: "Honda City",
			Date: "2024-01-15", Time: "10:00 AM",
			Status: domain.StatusConfirmed, Price: 499, Location: "Mumbai",
		},
		{
			ID: 2, ClientID: 1, ProviderID: 2,
			Service: "Wheel Balancing", CarModel: "Honda City",
			Date: "2024-01-20", Time: "2:00 PM",
			Status: domain.StatusPending, Price: 299, Location: "Mumbai",
		},
	}
}
