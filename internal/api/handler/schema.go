package handler

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// flexInt accepts both 42 and "42"; HTML forms post numbers as strings.
// Anything that is not an integer fails binding instead of being stored.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	kind := "number"
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
		kind = "string"
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// encoding/json fills in the field name for UnmarshalTypeError.
		return &json.UnmarshalTypeError{
			Value: fmt.Sprintf("%s %q", kind, s),
			Type:  reflect.TypeOf(int64(0)),
		}
	}
	*f = flexInt(n)
	return nil
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"     validate:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role"     validate:"omitempty,oneof=client provider admin"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// authUserResponse is the user projection returned on register and login.
type authUserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type authResponse struct {
	Success bool             `json:"success"`
	Token   string           `json:"token"`
	User    authUserResponse `json:"user"`
}

type logoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// userResponse is the public projection used by the profile and the admin
// directory. It never carries the password hash.
type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Phone string `json:"phone"`
}

// --- Bookings ---

type createBookingRequest struct {
	Service    string   `json:"service"    validate:"required"`
	CarModel   string   `json:"carModel"   validate:"required"`
	Date       string   `json:"date"       validate:"required"`
	Time       string   `json:"time"       validate:"required"`
	ProviderID flexInt  `json:"providerId" validate:"required,gt=0"`
	Price      *flexInt `json:"price"      validate:"required,gte=0"` // nil when absent or null
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

type bookingResponse struct {
	ID         int64  `json:"id"`
	ClientID   int64  `json:"clientId"`
	ProviderID int64  `json:"providerId"`
	Service    string `json:"service"`
	CarModel   string `json:"carModel"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
	Price      int64  `json:"price"`
	Location   string `json:"location"`
}

type bookingEnvelope struct {
	Success bool            `json:"success"`
	Booking bookingResponse `json:"booking"`
}
