package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/driveconnect/booking-api/internal/core/domain"
	"github.com/driveconnect/booking-api/internal/core/ports"
)

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:         1,
		ClientID:   1,
		ProviderID: 2,
		Service:    "Full Service",
		CarModel:   "Honda City",
		Date:       "2024-01-15",
		Time:       "10:00",
		Status:     domain.StatusConfirmed,
		Price:      499,
		Location:   "Mumbai",
	}
}

func TestBookingHandler_ListClient(t *testing.T) {
	stub := &stubBookingService{
		listFn: func(ctx context.Context, identity domain.Identity) ([]*domain.Booking, error) {
			if identity != clientIdentity {
				t.Fatalf("unexpected identity: %+v", identity)
			}
			return []*domain.Booking{sampleBooking()}, nil
		},
	}
	h := NewBookingHandler(stub)
	c, rec := newContext(http.MethodGet, "/api/client/bookings", nil, &clientIdentity)

	if err := h.ListClient(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []bookingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0].CarModel != "Honda City" || resp[0].Status != "confirmed" {
		t.Fatalf("unexpected bookings: %+v", resp)
	}
}

func TestBookingHandler_ListEmptyIsArray(t *testing.T) {
	stub := &stubBookingService{
		listFn: func(ctx context.Context, identity domain.Identity) ([]*domain.Booking, error) {
			return []*domain.Booking{}, nil
		},
	}
	h := NewBookingHandler(stub)
	c, rec := newContext(http.MethodGet, "/api/provider/bookings", nil, &providerIdentity)

	if err := h.ListProvider(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %s", got)
	}
}

func TestBookingHandler_ListForbidden(t *testing.T) {
	stub := &stubBookingService{
		listFn: func(ctx context.Context, identity domain.Identity) ([]*domain.Booking, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewBookingHandler(stub)
	c, _ := newContext(http.MethodGet, "/api/admin/bookings", nil, &clientIdentity)

	if err := h.ListAll(c); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestBookingHandler_MissingIdentity(t *testing.T) {
	h := NewBookingHandler(&stubBookingService{})
	c, _ := newContext(http.MethodGet, "/api/client/bookings", nil, nil)

	requireHTTPError(t, h.ListClient(c), http.StatusUnauthorized)
}

func TestBookingHandler_Create(t *testing.T) {
	var got ports.CreateBookingInput
	stub := &stubBookingService{
		createFn: func(ctx context.Context, identity domain.Identity, input ports.CreateBookingInput) (*ports.CreateBookingResult, error) {
			if identity.UserID != clientIdentity.UserID {
				t.Fatalf("unexpected identity: %+v", identity)
			}
			got = input
			b := sampleBooking()
			b.ID = 3
			b.Status = domain.StatusPending
			return &ports.CreateBookingResult{Booking: b}, nil
		},
	}
	h := NewBookingHandler(stub)

	// Numbers posted as strings are accepted.
	body := strings.NewReader(`{"service":"Full Service","carModel":"Honda City","date":"2024-01-15","time":"10:00","providerId":"2","price":"499"}`)
	c, rec := newContext(http.MethodPost, "/api/bookings", body, &clientIdentity)
	c.Request().Header.Set("Idempotency-Key", "abc-123")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.ProviderID != 2 || got.Price != 499 || got.IdempotencyKey != "abc-123" || got.Service != "Full Service" {
		t.Fatalf("unexpected input: %+v", got)
	}
	if rec.Header().Get("Idempotent-Replayed") != "" {
		t.Fatalf("fresh booking must not be marked as replayed")
	}

	var resp bookingEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Booking.ID != 3 || resp.Booking.Status != "pending" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestBookingHandler_CreateReplay(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, identity domain.Identity, input ports.CreateBookingInput) (*ports.CreateBookingResult, error) {
			return &ports.CreateBookingResult{Booking: sampleBooking(), Replayed: true}, nil
		},
	}
	h := NewBookingHandler(stub)

	body := strings.NewReader(`{"service":"Full Service","carModel":"Honda City","date":"2024-01-15","time":"10:00","providerId":2,"price":499}`)
	c, rec := newContext(http.MethodPost, "/api/bookings", body, &clientIdentity)
	c.Request().Header.Set("Idempotency-Key", "abc-123")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", rec.Code)
	}
	if rec.Header().Get("Idempotent-Replayed") != "true" {
		t.Fatalf("expected replay header")
	}
}

func TestBookingHandler_CreateValidation(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, identity domain.Identity, input ports.CreateBookingInput) (*ports.CreateBookingResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewBookingHandler(stub)

	cases := map[string]string{
		"missing service":    `{"carModel":"X","date":"2024-01-15","time":"10:00","providerId":2,"price":1}`,
		"missing provider":   `{"service":"S","carModel":"X","date":"2024-01-15","time":"10:00","price":1}`,
		"provider not a num": `{"service":"S","carModel":"X","date":"2024-01-15","time":"10:00","providerId":"two","price":1}`,
		"negative price":     `{"service":"S","carModel":"X","date":"2024-01-15","time":"10:00","providerId":2,"price":-5}`,
		"missing price":      `{"service":"S","carModel":"X","date":"2024-01-15","time":"10:00","providerId":2}`,
		"null price":         `{"service":"S","carModel":"X","date":"2024-01-15","time":"10:00","providerId":2,"price":null}`,
		"empty price":        `{"service":"S","carModel":"X","date":"2024-01-15","time":"10:00","providerId":2,"price":""}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/api/bookings", strings.NewReader(payload), &clientIdentity)
			requireHTTPError(t, h.Create(c), http.StatusBadRequest)
		})
	}
}

func TestBookingHandler_CreateBadNumberNamesField(t *testing.T) {
	h := NewBookingHandler(&stubBookingService{})

	body := strings.NewReader(`{"service":"S","carModel":"X","date":"2024-01-15","time":"10:00","providerId":2,"price":""}`)
	c, _ := newContext(http.MethodPost, "/api/bookings", body, &clientIdentity)

	he := requireHTTPError(t, h.Create(c), http.StatusBadRequest)
	msg, _ := he.Message.(string)
	if !strings.Contains(msg, "price") || !strings.Contains(msg, `""`) {
		t.Fatalf("message should name the field and show the value, got %q", msg)
	}
}

func TestBookingHandler_CreateZeroPriceAllowed(t *testing.T) {
	var got ports.CreateBookingInput
	stub := &stubBookingService{
		createFn: func(ctx context.Context, identity domain.Identity, input ports.CreateBookingInput) (*ports.CreateBookingResult, error) {
			got = input
			return &ports.CreateBookingResult{Booking: sampleBooking()}, nil
		},
	}
	h := NewBookingHandler(stub)

	body := strings.NewReader(`{"service":"Inspection","carModel":"X","date":"2024-01-15","time":"10:00","providerId":2,"price":0}`)
	c, _ := newContext(http.MethodPost, "/api/bookings", body, &clientIdentity)

	if err := h.Create(c); err != nil {
		t.Fatalf("an explicit zero price is valid: %v", err)
	}
	if got.Price != 0 || got.Service != "Inspection" {
		t.Fatalf("unexpected input: %+v", got)
	}
}

func TestBookingHandler_CreateInFlight(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, identity domain.Identity, input ports.CreateBookingInput) (*ports.CreateBookingResult, error) {
			return nil, domain.ErrIdempotencyInFlight
		},
	}
	h := NewBookingHandler(stub)

	body := strings.NewReader(`{"service":"S","carModel":"X","date":"2024-01-15","time":"10:00","providerId":2,"price":1}`)
	c, _ := newContext(http.MethodPost, "/api/bookings", body, &clientIdentity)
	c.Request().Header.Set("Idempotency-Key", "abc-123")

	if err := h.Create(c); !errors.Is(err, domain.ErrIdempotencyInFlight) {
		t.Fatalf("expected ErrIdempotencyInFlight, got %v", err)
	}
}

func TestBookingHandler_CreateKeyTooLong(t *testing.T) {
	h := NewBookingHandler(&stubBookingService{})

	body := strings.NewReader(`{"service":"S","carModel":"X","date":"2024-01-15","time":"10:00","providerId":2,"price":1}`)
	c, _ := newContext(http.MethodPost, "/api/bookings", body, &clientIdentity)
	c.Request().Header.Set("Idempotency-Key", strings.Repeat("k", 256))

	requireHTTPError(t, h.Create(c), http.StatusBadRequest)
}

func TestBookingHandler_UpdateStatus(t *testing.T) {
	stub := &stubBookingService{
		updateFn: func(ctx context.Context, identity domain.Identity, id int64, status domain.BookingStatus) (*domain.Booking, error) {
			if identity != providerIdentity || id != 1 || status != domain.StatusCompleted {
				t.Fatalf("unexpected args: %+v %d %s", identity, id, status)
			}
			b := sampleBooking()
			b.Status = status
			return b, nil
		},
	}
	h := NewBookingHandler(stub)

	c, rec := newContext(http.MethodPut, "/api/bookings/1/status", strings.NewReader(`{"status":"completed"}`), &providerIdentity)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp bookingEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if rec.Code != http.StatusOK || !resp.Success || resp.Booking.Status != "completed" {
		t.Fatalf("unexpected response %d %+v", rec.Code, resp)
	}
}

func TestBookingHandler_UpdateStatusBadInput(t *testing.T) {
	stub := &stubBookingService{
		updateFn: func(ctx context.Context, identity domain.Identity, id int64, status domain.BookingStatus) (*domain.Booking, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewBookingHandler(stub)

	cases := []struct {
		name, id, body string
	}{
		{"non numeric id", "abc", `{"status":"completed"}`},
		{"zero id", "0", `{"status":"completed"}`},
		{"unknown status", "1", `{"status":"teleported"}`},
		{"missing status", "1", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPut, "/api/bookings/"+tc.id+"/status", strings.NewReader(tc.body), &adminIdentity)
			c.SetParamNames("id")
			c.SetParamValues(tc.id)
			requireHTTPError(t, h.UpdateStatus(c), http.StatusBadRequest)
		})
	}
}

func TestBookingHandler_UpdateStatusNotFound(t *testing.T) {
	stub := &stubBookingService{
		updateFn: func(ctx context.Context, identity domain.Identity, id int64, status domain.BookingStatus) (*domain.Booking, error) {
			return nil, domain.ErrBookingNotFound
		},
	}
	h := NewBookingHandler(stub)

	c, _ := newContext(http.MethodPut, "/api/bookings/99/status", strings.NewReader(`{"status":"cancelled"}`), &adminIdentity)
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := h.UpdateStatus(c); err != domain.ErrBookingNotFound {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestFlexInt(t *testing.T) {
	cases := map[string]struct {
		in      string
		want    int64
		wantErr bool
	}{
		"number":        {in: `42`, want: 42},
		"string":        {in: `"42"`, want: 42},
		"padded string": {in: `" 7 "`, want: 7},
		"null":          {in: `null`, want: 0},
		"float":         {in: `4.5`, wantErr: true},
		"word":          {in: `"abc"`, wantErr: true},
		"empty string":  {in: `""`, wantErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var f flexInt
			err := json.Unmarshal([]byte(tc.in), &f)
			if tc.wantErr {
				var typeErr *json.UnmarshalTypeError
				if !errors.As(err, &typeErr) {
					t.Fatalf("expected *json.UnmarshalTypeError, got %v (%d)", err, f)
				}
				return
			}
			if err != nil || int64(f) != tc.want {
				t.Fatalf("got %d, %v; want %d", f, err, tc.want)
			}
		})
	}
}
