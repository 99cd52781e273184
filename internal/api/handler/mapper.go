package handler

import "github.com/driveconnect/booking-api/internal/core/domain"

func toAuthResponse(token string, u *domain.User) authResponse {
	return authResponse{
		Success: true,
		Token:   token,
		User: authUserResponse{
			ID:    u.ID,
			Email: u.Email,
			Name:  u.Name,
			Role:  u.Role,
		},
	}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
		Phone: u.Phone,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:         b.ID,
		ClientID:   b.ClientID,
		ProviderID: b.ProviderID,
		Service:    b.Service,
		CarModel:   b.CarModel,
		Date:       b.Date,
		Time:       b.Time,
		Status:     string(b.Status),
		Price:      b.Price,
		Location:   b.Location,
	}
}

func toBookingResponses(bookings []*domain.Booking) []bookingResponse {
	out := make([]bookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = toBookingResponse(b)
	}
	return out
}
