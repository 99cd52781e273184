package domain

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is a known status. Any known status may follow any
// other; there is no transition table.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Upcoming reports whether the booking still has to happen.
func (s BookingStatus) Upcoming() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Booking is a car-service appointment between a client and a provider.
// Date and Time are free text.
type Booking struct {
	ID         int64         `json:"id"`
	ClientID   int64         `json:"clientId"`
	ProviderID int64         `json:"providerId"`
	Service    string        `json:"service"`
	CarModel   string        `json:"carModel"`
	Date       string        `json:"date"`
	Time       string        `json:"time"`
	Status     BookingStatus `json:"status"`
	Price      int64         `json:"price"`
	Location   string        `json:"location"`
	CreatedAt  time.Time     `json:"-"`
	UpdatedAt  time.Time     `json:"-"`
}
