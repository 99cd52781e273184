package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/driveconnect/booking-api/internal/api/metrics"
	"github.com/driveconnect/booking-api/internal/core/domain"
	"github.com/driveconnect/booking-api/internal/core/ports"
)

const (
	headerIdempotencyKey     = "Idempotency-Key"
	headerIdempotentReplayed = "Idempotent-Replayed"
	maxIdempotencyKeyLength  = 255
)

type BookingHandler struct {
	bookingService ports.BookingService
}

func NewBookingHandler(bookingService ports.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// ListClient returns the caller's own bookings.
//
// @Summary      List the client's bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   bookingResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/client/bookings [get]
func (h *BookingHandler) ListClient(c echo.Context) error {
	return h.list(c, h.bookingService.ListClientBookings)
}

// ListProvider returns the bookings assigned to the calling provider.
//
// @Summary      List the provider's bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   bookingResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/provider/bookings [get]
func (h *BookingHandler) ListProvider(c echo.Context) error {
	return h.list(c, h.bookingService.ListProviderBookings)
}

// ListAll returns every booking on the platform.
//
// @Summary      List all bookings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   bookingResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/bookings [get]
func (h *BookingHandler) ListAll(c echo.Context) error {
	return h.list(c, h.bookingService.ListAllBookings)
}

type listFunc func(ctx context.Context, identity domain.Identity) ([]*domain.Booking, error)

func (h *BookingHandler) list(c echo.Context, fn listFunc) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	bookings, err := fn(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponses(bookings))
}

// Create books a service for the calling client. Sending the same
// Idempotency-Key again returns the first booking.
//
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Client-generated key for safe retries"
// @Param        body             body      createBookingRequest  true   "Booking details"
// @Success      200              {object}  bookingEnvelope
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      409              {object}  errorResponse  "Same Idempotency-Key still in progress"
// @Router       /api/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	key := c.Request().Header.Get(headerIdempotencyKey)
	if len(key) > maxIdempotencyKeyLength {
		return echo.NewHTTPError(http.StatusBadRequest, "Idempotency-Key must be at most 255 characters")
	}

	var req createBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.bookingService.CreateBooking(c.Request().Context(), identity, ports.CreateBookingInput{
		Service:        req.Service,
		CarModel:       req.CarModel,
		Date:           req.Date,
		Time:           req.Time,
		ProviderID:     int64(req.ProviderID),
		Price:          int64(*req.Price),
		IdempotencyKey: key,
	})
	if err != nil {
		return err
	}

	if res.Replayed {
		metrics.BookingReplaysTotal.Inc()
		c.Response().Header().Set(headerIdempotentReplayed, "true")
	} else {
		metrics.BookingsCreatedTotal.Inc()
	}
	return c.JSON(http.StatusOK, bookingEnvelope{Success: true, Booking: toBookingResponse(res.Booking)})
}

// UpdateStatus moves a booking to a new status. Clients and providers may
// only update their own bookings; admins may update any booking.
//
// @Summary      Update a booking's status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Booking ID"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  bookingEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/bookings/{id}/status [put]
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "booking id must be a positive integer")
	}

	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	status := domain.BookingStatus(req.Status)
	booking, err := h.bookingService.UpdateBookingStatus(c.Request().Context(), identity, id, status)
	if err != nil {
		return err
	}

	metrics.BookingStatusChangesTotal.WithLabelValues(string(status), identity.Role).Inc()
	return c.JSON(http.StatusOK, bookingEnvelope{Success: true, Booking: toBookingResponse(booking)})
}
